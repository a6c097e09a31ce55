package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	baseURL := flag.String("server", envOr("CINEGATE_SERVER_URL", "http://127.0.0.1:8080"), "server URL (e.g. http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	api := *baseURL + "/api/v1"

	switch args[0] {
	case "health":
		run(client, http.MethodGet, api+"/health", nil)
	case "version":
		run(client, http.MethodGet, api+"/version", nil)
	case "catalog":
		q := url.Values{}
		if len(args) > 1 {
			q.Set("tab", args[1])
		}
		if len(args) > 2 {
			q.Set("query", strings.Join(args[2:], " "))
		}
		target := api + "/catalog"
		if len(q) > 0 {
			target += "?" + q.Encode()
		}
		run(client, http.MethodGet, target, nil)
	case "genres":
		run(client, http.MethodGet, api+"/catalog/genres", nil)
	case "profile":
		run(client, http.MethodGet, api+"/catalog/profile", nil)
	case "refresh":
		run(client, http.MethodPost, api+"/catalog/refresh", nil)
	case "favorite":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		run(client, http.MethodPost, api+"/catalog/"+args[1]+"/favorite", nil)
	case "play":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		run(client, http.MethodPost, api+"/catalog/"+args[1]+"/play", nil)
	case "notices":
		run(client, http.MethodGet, api+"/admin/notices", nil)
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", args[0])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: cinegate [health|version|catalog [tab] [query]|genres|profile|refresh|favorite <id>|play <id>|notices]")
}

func run(client *http.Client, method, target string, body io.Reader) {
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
