package folio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/mlep/folio/date"
)

// contains http utils to deal with the remote quote service

const quote_api_key = "FOLIO_QUOTE_API_KEY"

var quoteApiFlag = flag.String("quote-api-key", "", "EODHD API key to use for fetching prices.\n If missing it will read the environment variable \""+quote_api_key+"\". You can get one at https://eodhd.com/")

func quoteApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *quoteApiFlag == "" {
		*quoteApiFlag = os.Getenv(quote_api_key)
	}
	return *quoteApiFlag
}

// quoteBaseURL is a var so tests can point it at a local server.
var quoteBaseURL = "https://eodhd.com/api/real-time"

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// returns a client with a cache all with daily expire
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// fetchQuote returns the latest close for a single symbol.
//
//	https://eodhd.com/api/real-time/AAPL.US?fmt=json&api_token=...
//	{
//	  "code": "AAPL.US",
//	  "timestamp": 1756400,
//	  "open": 230.82,
//	  "close": 232.56,
//	  ...
//	}
func fetchQuote(client *http.Client, apiKey, symbol string) (Money, error) {
	addr := fmt.Sprintf("%s/%s?fmt=json&api_token=%s", quoteBaseURL, url.PathEscape(symbol), apiKey)

	var payload interface{}
	if err := jwget(client, addr, &payload); err != nil {
		return Money{}, err
	}
	value, err := jsonpath.Get("$.close", payload)
	if err != nil {
		return Money{}, fmt.Errorf("no close price for %q: %w", symbol, err)
	}
	// the api returns "NA" instead of a number for unknown symbols.
	price, ok := value.(float64)
	if !ok {
		return Money{}, fmt.Errorf("close price for %q is not a number: %v", symbol, value)
	}
	return USD(price), nil
}

// FetchQuotes fetches the latest close price for every symbol. Symbols that
// cannot be resolved are skipped with a log line, the engine treats their
// absence as price 0. The whole call fails only when the API key is missing.
func FetchQuotes(symbols []string) (PriceMap, error) {
	apiKey := quoteApiKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing quote API key: set -quote-api-key or the %s environment variable", quote_api_key)
	}
	client := daily()
	prices := make(PriceMap, len(symbols))
	for _, symbol := range symbols {
		symbol = NormalizeSymbol(symbol)
		price, err := fetchQuote(client, apiKey, symbol)
		if err != nil {
			log.Printf("skip-quote symbol=%q err=%q", symbol, err)
			continue
		}
		prices.Set(symbol, price)
	}
	return prices, nil
}
