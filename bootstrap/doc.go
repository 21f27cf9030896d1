// Package bootstrap runs a finite command with a uniform lifecycle: apply
// config defaults, validate, initialize the logger, run start hooks, run the
// task with SIGINT/SIGTERM canceling its context, then run stop hooks within
// a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithVersion(version.GetVersionInfo().Version))
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := process.Run(ctx, spec)
//	    return err
//	})
package bootstrap
