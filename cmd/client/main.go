// Command client is an interactive REPL that talks to a running trading
// venue purely over HTTP; it never imports the core packages directly.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type accountBalanceRequest struct {
	Signer string `json:"signer"`
}

type accountUpdateRequest struct {
	Signer string `json:"signer"`
	Amount uint64 `json:"amount"`
}

type sendRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type order struct {
	Price  uint64 `json:"price"`
	Amount uint64 `json:"amount"`
	Side   string `json:"side"`
	Signer string `json:"signer"`
}

func main() {
	baseURL := "http://localhost:3000"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	fmt.Printf("Hello, trading world! You'll send your requests to: %s\n", baseURL)

	client := &http.Client{}
	reader := bufio.NewReader(os.Stdin)

	for {
		input := readFromStdin(reader, "Choose operation [deposit, withdraw, send, print, txlog, order, orderbook, quit], confirm with return:")

		switch input {
		case "deposit":
			account := readFromStdin(reader, "Account:")
			amount, err := strconv.ParseUint(readFromStdin(reader, "Amount:"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Not a number: %v\n", err)
				continue
			}
			req := accountUpdateRequest{Signer: account, Amount: amount}
			if !post(client, baseURL+"/account/deposit", req) {
				continue
			}
			fmt.Printf("Deposited %d into account '%s'\n", amount, account)

		case "withdraw":
			account := readFromStdin(reader, "Account:")
			amount, err := strconv.ParseUint(readFromStdin(reader, "Amount:"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Not a number: %v\n", err)
				continue
			}
			req := accountUpdateRequest{Signer: account, Amount: amount}
			if !post(client, baseURL+"/account/withdraw", req) {
				continue
			}
			fmt.Printf("Withdrew %d from account '%s'\n", amount, account)

		case "send":
			sender := readFromStdin(reader, "Sender Account:")
			recipient := readFromStdin(reader, "Recipient Account:")
			amount, err := strconv.ParseUint(readFromStdin(reader, "Amount:"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Not a number: %v\n", err)
				continue
			}
			req := sendRequest{From: sender, To: recipient, Amount: amount}
			if !post(client, baseURL+"/account/send", req) {
				continue
			}
			fmt.Printf("Sent %d from account '%s' to '%s'\n", amount, sender, recipient)

		case "order":
			o, err := readOrderParameters(reader)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid order parameters: %v\n", err)
				continue
			}
			if !post(client, baseURL+"/order", o) {
				continue
			}
			fmt.Printf("Ordered: %+v\n", o)

		case "orderbook":
			body, ok := get(client, baseURL+"/orderbook")
			if !ok {
				continue
			}
			fmt.Printf("The orderbook: %s\n", body)

		case "txlog":
			body, ok := get(client, baseURL+"/txlog")
			if !ok {
				continue
			}
			fmt.Printf("The TX log: %s\n", body)

		case "print":
			account := readFromStdin(reader, "Account:")
			req := accountBalanceRequest{Signer: account}
			buf, _ := json.Marshal(req)
			resp, err := client.Post(baseURL+"/account", "application/json", bytes.NewReader(buf))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Something went wrong: %v\n", err)
				continue
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				fmt.Fprintf(os.Stderr, "Something went wrong: %s\n", body)
				continue
			}
			fmt.Printf("Account %s has balance '%s'\n", account, body)

		case "quit":
			fmt.Println("Quitting...")
			return

		default:
			fmt.Fprintf(os.Stderr, "Invalid option: '%s'\n", input)
		}
	}
}

func readOrderParameters(reader *bufio.Reader) (order, error) {
	account := readFromStdin(reader, "Account:")
	sideInput := strings.ToLower(readFromStdin(reader, "Buy or Sell?:"))
	var side string
	switch sideInput {
	case "buy":
		side = "Buy"
	case "sell":
		side = "Sell"
	default:
		return order{}, fmt.Errorf("unsupported order side: %s", sideInput)
	}

	amount, err := strconv.ParseUint(readFromStdin(reader, "Amount:"), 10, 64)
	if err != nil {
		return order{}, err
	}
	price, err := strconv.ParseUint(readFromStdin(reader, "Price:"), 10, 64)
	if err != nil {
		return order{}, err
	}

	return order{Price: price, Amount: amount, Side: side, Signer: account}, nil
}

func readFromStdin(reader *bufio.Reader, label string) string {
	fmt.Println(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func post(client *http.Client, url string, payload any) bool {
	buf, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Something went wrong: %v\n", err)
		return false
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Something went wrong: %v\n", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Something went wrong: %s\n", body)
		return false
	}
	return true
}

func get(client *http.Client, url string) (string, bool) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Something went wrong: %v\n", err)
		return "", false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "Something went wrong: %s\n", body)
		return "", false
	}
	return string(body), true
}
