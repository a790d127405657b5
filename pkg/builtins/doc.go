// Package builtins provides the standard command set of the bot.
//
// The commands double as a showcase of the command package: between them
// they use every parameter kind, every return kind, the deferred admin
// check and the enumerable result views.
//
//	engine := botcmd.New()
//	if err := builtins.Register(engine); err != nil {
//		return err
//	}
package builtins
