// Package environment carries the deployment environment (development,
// staging or production) through request contexts and structured logs.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
// The error page renderer uses IsDevelopment to decide whether internal error
// details may be shown to the user.
package environment
