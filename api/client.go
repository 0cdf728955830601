// Package api is a typed client for the Esplora block explorer REST API.
//
// Files:
//
//	config.go       - endpoints, network constants, client options
//	transport.go    - http.Client construction (default headers, proxy, fallback)
//	base.go         - Client, constructors and the request executor
//	errors.go       - the unified Error type and its kinds
//	types.go        - response schemas
//	decode.go       - body decoders (JSON, bytes, text, integer)
//	routes.go       - the route and decode table shared by both clients
//	blocks.go       - block endpoints
//	transactions.go - transaction endpoints and broadcast
//	addresses.go    - address and scripthash endpoints
//	mempool.go      - mempool and fee estimate endpoints
//	async.go        - AsyncClient and Future
//
// Usage:
//
//	client, err := api.NewClient(api.MainnetEsploraURL, nil)
//	block, err := client.GetBlock(ctx, hash)
//
//	async := client.Async()
//	txF := async.GetTx(ctx, txid)
//	statusF := async.GetTxStatus(ctx, txid)
//	tx, err := txF.Await(ctx)
//	status, err := statusF.Await(ctx)
package api
