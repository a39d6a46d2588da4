// Package main is a small gateway client: it dials the ledger's WebSocket
// endpoint, sends one execute or query envelope, and prints the reply.
//
// Examples:
//
//	ledgerctl -addr ws://localhost:8080/ws -sender <addr> \
//	    -execute '{"mint":{"token_id":"nft1","owner":"<addr>"}}'
//	ledgerctl -addr ws://localhost:8080/ws -query '{"num_tokens":{}}'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type request struct {
	ID      uint64          `json:"id"`
	Sender  string          `json:"sender,omitempty"`
	Execute json.RawMessage `json:"execute,omitempty"`
	Query   json.RawMessage `json:"query,omitempty"`
}

type reply struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "Gateway WebSocket URL")
	sender := flag.String("sender", "", "Sender address (required for -execute)")
	execute := flag.String("execute", "", "Execute envelope JSON")
	queryMsg := flag.String("query", "", "Query envelope JSON")
	timeout := flag.Duration("timeout", 10*time.Second, "Reply timeout")

	flag.Parse()

	logger := log.New(os.Stderr, "[ledgerctl] ", 0)

	if (*execute == "") == (*queryMsg == "") {
		logger.Fatal("exactly one of -execute or -query is required")
	}
	if *execute != "" && *sender == "" {
		logger.Fatal("-sender is required with -execute")
	}

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		logger.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()

	req := request{ID: 1, Sender: *sender}
	if *execute != "" {
		req.Execute = json.RawMessage(*execute)
	} else {
		req.Query = json.RawMessage(*queryMsg)
	}

	if err := conn.WriteJSON(req); err != nil {
		logger.Fatalf("send request: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(*timeout))
	var res reply
	if err := conn.ReadJSON(&res); err != nil {
		logger.Fatalf("read reply: %v", err)
	}

	if res.Error != "" {
		logger.Fatalf("ledger error: %s", res.Error)
	}
	fmt.Println(string(res.Result))
}
