package main

import "time"

type Options struct {
	API         string        `short:"a" long:"api" env:"ORGKEY_API" default:"http://localhost:8080" description:"base URL of the onboarding service"`
	Interactive bool          `short:"i" long:"interactive" description:"prompt for keys until interrupted"`
	Timeout     time.Duration `short:"t" long:"timeout" default:"5s" description:"lookup timeout per key"`
	Suggest     []string      `short:"s" long:"suggest" value-name:"NAME" description:"suggest a free key for an organization name (repeatable)"`
	Verbose     bool          `short:"v" long:"verbose" description:"log lookups to stderr"`

	Args struct {
		Keys []string `positional-arg-name:"key" description:"organization keys to check"`
	} `positional-args:"yes"`
}
