package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// GeocodeResult é o mínimo que a API pública do Nominatim devolve e que o app usa.
type GeocodeResult struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// GeocodeAddress resolve um endereço em coordenadas via Nominatim (OpenStreetMap).
// A base pode ser trocada com GEOCODE_BASE_URL (útil pra apontar pra um mock em teste).
func GeocodeAddress(ctx context.Context, address string) (*GeocodeResult, error) {
	base := os.Getenv("GEOCODE_BASE_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org"
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Exigência de uso da API pública do Nominatim
	req.Header.Set("User-Agent", "wtg-backend/1.0")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocode error %d: %s", resp.StatusCode, string(body))
	}

	var parsed []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("endereço não encontrado")
	}

	lat, err := strconv.ParseFloat(parsed[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("latitude inválida na resposta: %v", err)
	}
	lon, err := strconv.ParseFloat(parsed[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("longitude inválida na resposta: %v", err)
	}

	return &GeocodeResult{
		DisplayName: parsed[0].DisplayName,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}
