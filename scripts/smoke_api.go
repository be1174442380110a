//go:build ignore

// Smoke test against a running server: go run scripts/smoke_api.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/interpret/v1"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(path string, body interface{}) (*http.Response, []byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

type step struct {
	title string
	path  string
	body  map[string]interface{}
}

func main() {
	color.Cyan("🚀 Starting interpretation API smoke test\n")

	steps := []step{
		{"1. Parse dining search", "/parse", map[string]interface{}{
			"tool_name":   "search_restaurants",
			"vertical_id": "dining",
			"content":     `{"restaurants":[{"name":"Saffron Table","cuisine":"Indian","rating":4.5}]}`,
			"context":     map[string]interface{}{"latest_user_query": "thai food in indiranagar"},
		}},
		{"2. Parse cart", "/parse", map[string]interface{}{
			"tool_name":   "get_cart",
			"vertical_id": "grocery",
			"content": map[string]interface{}{
				"items":     []interface{}{map[string]interface{}{"name": "Milk", "price": 55, "quantity": 2}},
				"lineItems": []interface{}{map[string]interface{}{"label": "To Pay", "value": "₹110"}},
			},
		}},
		{"3. Truncate", "/truncate", map[string]interface{}{
			"json_text":   `{"items":[{"name":"amul butter"},{"name":"bread"},{"name":"eggs"}]}`,
			"query_terms": []string{"butter"},
			"max_chars":   40,
		}},
		{"4. Variants", "/variants", map[string]interface{}{
			"text": "**Coca Cola**\n- 300ml @ ₹40\n- 500ml @ ₹65\n",
		}},
	}

	for _, s := range steps {
		color.Yellow("\n%s", s.title)
		resp, body, err := sendRequest(s.path, s.body)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		if resp.StatusCode != http.StatusOK {
			color.Red("Status: %s", resp.Status)
		} else {
			color.Green("Status: %s", resp.Status)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			fmt.Println(string(body))
			continue
		}
		prettyPrint(parsed)
	}
}
