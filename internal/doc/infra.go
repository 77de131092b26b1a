package doc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const DefaultDocServiceURL = "http://python_doc:8000/convert"

type pythonResp struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// PythonDocConverter sends Word files to the conversion sidecar.
type PythonDocConverter struct {
	URL    string
	client *http.Client
}

func NewPythonDocConverter(url string) *PythonDocConverter {
	if url == "" {
		url = DefaultDocServiceURL
	}
	return &PythonDocConverter{URL: url, client: &http.Client{Timeout: 60 * time.Second}}
}

func (c *PythonDocConverter) ConvertToText(ctx context.Context, data []byte) (Text, error) {
	log.Printf("[doc.conv] sending %d bytes to %s", len(data), c.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
	if err != nil {
		return Text{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	// ---- HTTP ----
	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[doc.conv] HTTP ERROR: %v", err)
		return Text{}, fmt.Errorf("doc service error: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[doc.conv] BAD STATUS %d BODY: %s", resp.StatusCode, string(body))
		return Text{}, fmt.Errorf("doc service bad status %d", resp.StatusCode)
	}

	// ---- PARSE JSON ----
	var out pythonResp
	if err := json.Unmarshal(body, &out); err != nil {
		return Text{}, fmt.Errorf("doc service json: %w", err)
	}

	log.Printf("[doc.conv] text length received: %d", len(out.Text))
	return Text{Text: out.Text, Pages: out.Pages, Method: "doc_service"}, nil
}
