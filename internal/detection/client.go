// Package detection proxies image pairs to the external anomaly
// detection service and relays its findings.
package detection

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

const (
	serviceName   = "anomaly detection service"
	healthTimeout = 5 * time.Second
)

// Client talks to the detection microservice. Detect blocks for the
// external round trip up to the configured timeout; no retries are
// performed.
type Client struct {
	baseURL      string
	detectClient *http.Client
	healthClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		detectClient: &http.Client{
			Timeout: timeout,
		},
		healthClient: &http.Client{
			Timeout: healthTimeout,
		},
	}
}

// Detect decodes both base64 payloads, packages them as PNG parts plus
// form fields and issues one synchronous call to the service.
func (c *Client) Detect(ctx context.Context, transformerID, baselineImage, maintenanceImage string, sliderPercent *float64) (*Result, error) {
	baselineBytes, err := decodeBase64Image(baselineImage)
	if err != nil {
		return nil, err
	}
	maintenanceBytes, err := decodeBase64Image(maintenanceImage)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writeImagePart(writer, "baseline", "baseline.png", baselineBytes); err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	if err := writeImagePart(writer, "maintenance", "maintenance.png", maintenanceBytes); err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	if err := writer.WriteField("transformer_id", transformerID); err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	if sliderPercent != nil {
		value := strconv.FormatFloat(*sliderPercent, 'f', -1, 64)
		if err := writer.WriteField("slider_percent", value); err != nil {
			return nil, fmt.Errorf("build detect request: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/detect", &body)
	if err != nil {
		return nil, fmt.Errorf("create detect request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.detectClient.Do(req)
	if err != nil {
		log.Printf("[error] operation=detect transformer_id=%s error=%v", transformerID, err)
		return nil, domain.NewUnavailable(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[warn] operation=detect transformer_id=%s status=%d", transformerID, resp.StatusCode)
		return nil, domain.NewUnavailable(serviceName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domain.NewUnavailable(serviceName, fmt.Errorf("decode response: %w", err))
	}

	log.Printf("[info] operation=detect transformer_id=%s anomalies=%d latency=%s",
		transformerID, result.AnomalyCount, time.Since(start))
	return &result, nil
}

// Healthy probes the service's health endpoint. Any failure is reported
// as unhealthy, never propagated.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		log.Printf("[warn] operation=detection_health error=%v", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false
	}
	return strings.Contains(string(body), "healthy")
}

// decodeBase64Image decodes a base64 payload, stripping a leading
// data-URI prefix up to the first comma when present.
func decodeBase64Image(image string) ([]byte, error) {
	if image == "" {
		return nil, domain.NewValidation("Image data cannot be empty")
	}

	data := image
	if idx := strings.Index(image, ","); idx >= 0 {
		data = image[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, domain.NewValidation("Invalid base64 image data")
	}
	return decoded, nil
}

func writeImagePart(writer *multipart.Writer, field, filename string, data []byte) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}
