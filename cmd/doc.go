// Package cmd implements the dappier command-line interface.
//
// # Commands
//
//   - root.go: App struct, cobra command tree, global flags, client construction
//   - search.go: real-time search; several queries run concurrently on an AsyncClient
//   - recommend.go: AI recommendations
//   - login.go: login, logout, status and config init
//   - interactive.go: REPL session built on go-prompt
//   - slash_commands.go: /model, /datamodel, /algorithm, /render, /recommend, /history
//
// Configuration is resolved by config.Config.Validate: flags, then
// DAPPIER_* variables, then the key stored by 'dappier login', then the
// config file, then built-in defaults.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
