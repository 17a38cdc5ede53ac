// Package pteroclient is the entry point for building a Pterodactyl panel
// client that implements ptero.Client.
//
// It normalizes the panel URL and hands the configuration to the internal
// implementation, which owns the transport, the optional response cache and
// the resource clients.
//
// Quick start
//
//	cli, err := pteroclient.New(&ptero.Config{
//	  BaseURL: "panel.example.com", // becomes https://panel.example.com
//	  Token:   "pacc_...",
//	})
//	if err != nil { log.Fatal(err) }
//
//	nodes := cli.Application().Nodes().List().AllPages().Send(ctx)
//
// A client key ("ptlc_...") targets the account API instead:
//
//	cli, err := pteroclient.NewWithToken("https://panel.example.com", "ptlc_...")
//	resp := cli.Account().Server().Power(ctx, "1a2b3c4d", ptero.PowerRestart)
package pteroclient
