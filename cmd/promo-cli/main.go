package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const defaultBaseURL = "http://localhost:8080"

type pageResponse struct {
	Items []struct {
		Code        int    `json:"codigo"`
		Name        string `json:"nome"`
		PromoPrice  string `json:"preco_promo"`
		NormalPrice string `json:"preco_normal"`
		Labels      struct {
			Badge    string `json:"selo"`
			Deadline string `json:"prazo"`
		} `json:"rotulos"`
	} `json:"items"`
	Summary string `json:"resumo"`
	Message string `json:"mensagem"`
}

func main() {
	global := flag.NewFlagSet("promohub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch args[0] {
	case "list":
		handleList(ctx, *baseURL, args[1:])
	case "watch":
		handleWatch(*baseURL)
	case "refresh":
		handleRefresh(ctx, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleList(ctx context.Context, baseURL string, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "search term")
	category := fs.String("categoria", "", "category filter")
	sortMode := fs.String("ordenar", "", "sort mode (urgencia, desconto_percentual, desconto_valor, preco_asc)")
	page := fs.Int("pagina", 1, "page number")
	_ = fs.Parse(args)

	u, err := url.Parse(baseURL + "/promocoes")
	if err != nil {
		log.Fatalf("bad base URL: %v", err)
	}
	query := u.Query()
	if *q != "" {
		query.Set("q", *q)
	}
	if *category != "" {
		query.Set("categoria", *category)
	}
	if *sortMode != "" {
		query.Set("ordenar", *sortMode)
	}
	query.Set("pagina", fmt.Sprintf("%d", *page))
	u.RawQuery = query.Encode()

	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("API returned status %d", resp.StatusCode)
	}

	var page1 pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page1); err != nil {
		log.Fatalf("decode response: %v", err)
	}

	if page1.Message != "" {
		fmt.Println(page1.Message)
	}
	for _, it := range page1.Items {
		fmt.Printf("[%d] %-40s R$ %-10s (de R$ %s)  %s | %s\n",
			it.Code, it.Name, it.PromoPrice, it.NormalPrice, it.Labels.Badge, it.Labels.Deadline)
	}
	fmt.Println(page1.Summary)
}

// handleWatch connects to the live session and prints every frame the
// server pushes, countdown ticks included.
func handleWatch(baseURL string) {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	log.Printf("[watch] connected to %s", wsURL)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("[watch] disconnected: %v", err)
		}
		var pretty map[string]any
		if err := json.Unmarshal(msg, &pretty); err != nil {
			fmt.Println(string(msg))
			continue
		}
		b, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(b))
	}
}

func handleRefresh(ctx context.Context, baseURL string) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/promocoes/refresh", nil)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("refresh failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	fmt.Printf("status %d: %v\n", resp.StatusCode, body)
}

func printUsage() {
	fmt.Println(`usage: promo-cli [-api URL] <command>

commands:
  list     [-q term] [-categoria cat] [-ordenar mode] [-pagina n]
  watch    stream live page/countdown frames over WebSocket
  refresh  trigger a full catalog reload`)
}
