package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

var ErrAborted = errors.New("prompt aborted")

// Prompter asks for one key. validate rejects an answer and asks again.
type Prompter interface {
	AskKey(ctx context.Context, validate func(string) error) (string, error)
}

type surveyPrompter struct {
	message string
}

func (p surveyPrompter) AskKey(ctx context.Context, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	prompt := &survey.Input{
		Message: p.message,
		Help:    "lowercase letters, digits and hyphens; at most 255 characters",
	}
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans any) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	if errors.Is(err, terminal.InterruptErr) {
		return "", ErrAborted
	}
	return out, err
}

// interactive prompts until the user interrupts. Every answer has passed
// orgkey.Check, so it is printed as available.
func interactive(ctx context.Context, p Prompter, c *checker, w io.Writer) error {
	validate := func(key string) error {
		lctx, cancel := c.withTimeout(ctx)
		defer cancel()
		return describe(orgkey.Check(lctx, c.lookup, key))
	}

	for {
		key, err := p.AskKey(ctx, validate)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, KeyResult{Key: key, Status: StatusAvailable}); err != nil {
			return err
		}
	}
}

// describe turns check errors into prompt messages.
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orgkey.ErrInvalidFormat):
		return errors.New(orgkey.DefaultTranslate(orgkey.MessageInvalidFormat))
	case errors.Is(err, orgkey.ErrKeyTaken):
		return errors.New(orgkey.DefaultTranslate(orgkey.MessageTaken))
	default:
		return err
	}
}
