/* external.go
 * Contains the logic used to fetch the tournament field from a url and return it to the higher level functions
 * Authors: Zachary Bower
 */

package external

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "MadnessPoolFieldFetcher/1.0"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// FetchField downloads and parses a field document
// Preconditions: Receives the url of a YAML or JSON field document
// Postconditions: Returns the parsed Field, or an error if the request or parsing fails
func FetchField(url string) (Field, error) {
	body, contentType, err := GetDocument(url)
	if err != nil {
		return Field{}, fmt.Errorf("error fetching field: %w", err)
	}

	format := "yaml"
	if strings.Contains(contentType, "json") || strings.HasSuffix(strings.ToLower(url), ".json") {
		format = "json"
	}
	return ParseField(body, format)
}

// Function to fetch a document from a given URL. This function does not perform any parsing on the body
// Preconditions: Receives string that contains URL for the document
// Postconditions: Returns the body and its content type, or an error if the request fails or the status is not 200
func GetDocument(url string) ([]byte, string, error) {
	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch document, status code: %d", response.StatusCode)
	}

	// Get body from response
	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return body, response.Header.Get("Content-Type"), nil
}
