package mcp

import (
	"strings"
	"testing"

	"github.com/Theovanstratum1953/montecarlo/internal/config"
	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

func testServer() *Server {
	return NewServer(&config.AppConfig{
		Trials:        500,
		MaxHorizon:    200,
		HorizonWindow: 20,
	})
}

func forecastPayload(data interface{}, t *testing.T) (*simulation.ForecastResult, string) {
	t.Helper()
	m, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map payload, got %T", data)
	}
	res, ok := m["result"].(*simulation.ForecastResult)
	if !ok {
		t.Fatalf("Expected *ForecastResult, got %T", m["result"])
	}
	md, _ := m["report"].(string)
	return res, md
}

func TestHandleDeliveryForecast(t *testing.T) {
	s := testServer()
	data, err := s.handleDeliveryForecast(map[string]interface{}{
		"min_items":  float64(12),
		"max_items":  float64(17),
		"throughput": []interface{}{float64(6), float64(5), float64(4), float64(6), float64(3)},
	})
	if err != nil {
		t.Fatalf("handleDeliveryForecast: %v", err)
	}

	res, md := forecastPayload(data, t)
	if res.Trials != 500 {
		t.Errorf("Expected server default of 500 trials, got %d", res.Trials)
	}
	if res.Status != simulation.StatusOK {
		t.Errorf("Expected status ok, got %s", res.Status)
	}
	if !strings.Contains(md, "The Risk Menu") {
		t.Errorf("Report missing risk menu:\n%s", md)
	}
}

func TestHandleDeliveryForecast_ArgumentErrors(t *testing.T) {
	s := testServer()

	if _, err := s.handleDeliveryForecast(map[string]interface{}{
		"max_items":  float64(5),
		"throughput": []interface{}{float64(1)},
	}); err == nil {
		t.Error("Expected error for missing min_items")
	}

	if _, err := s.handleDeliveryForecast(map[string]interface{}{
		"min_items":  float64(1),
		"max_items":  float64(5),
		"throughput": []interface{}{"six"},
	}); err == nil {
		t.Error("Expected error for non-numeric throughput")
	}

	if _, err := s.handleDeliveryForecast(map[string]interface{}{
		"min_items":  float64(1),
		"max_items":  float64(5),
		"throughput": []interface{}{},
	}); err == nil {
		t.Error("Expected error for empty throughput")
	}
}

func TestHandleRiskHorizon(t *testing.T) {
	s := testServer()
	data, err := s.handleRiskHorizon(map[string]interface{}{
		"total_scope": float64(100),
		"actuals":     []interface{}{float64(2), float64(5), float64(4)},
		"throughput":  []interface{}{float64(2), float64(5), float64(4), float64(6), float64(4), float64(3), float64(5)},
	})
	if err != nil {
		t.Fatalf("handleRiskHorizon: %v", err)
	}

	m := data.(map[string]interface{})
	res, ok := m["result"].(*simulation.HorizonResult)
	if !ok {
		t.Fatalf("Expected *HorizonResult, got %T", m["result"])
	}
	if res.Horizon != 20 {
		t.Errorf("Expected server default horizon window of 20, got %d", res.Horizon)
	}
	if res.Snapshot.Completed != 11 || res.Snapshot.PeriodsElapsed != 3 {
		t.Errorf("Actuals not collapsed into snapshot: %+v", res.Snapshot)
	}
	// The sampling pool is pulse + actuals.
	if res.Trials != 500 {
		t.Errorf("Expected 500 trials, got %d", res.Trials)
	}
}

func TestHandleRiskHorizon_ExplicitHorizonWins(t *testing.T) {
	s := testServer()
	data, err := s.handleRiskHorizon(map[string]interface{}{
		"total_scope": float64(50),
		"throughput":  []interface{}{float64(5)},
		"horizon":     float64(12),
	})
	if err != nil {
		t.Fatalf("handleRiskHorizon: %v", err)
	}
	res := data.(map[string]interface{})["result"].(*simulation.HorizonResult)
	if res.Horizon != 12 {
		t.Errorf("Expected explicit horizon 12, got %d", res.Horizon)
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	s := testServer()
	_, errRes := s.callTool([]byte(`{"name": "run_magic", "arguments": {}}`))
	if errRes == nil {
		t.Error("Expected JSON-RPC error for unknown tool")
	}
}

func TestCallTool_DeliveryForecastEndToEnd(t *testing.T) {
	s := testServer()
	result, errRes := s.callTool([]byte(`{
		"name": "run_delivery_forecast",
		"arguments": {"min_items": 10, "max_items": 10, "throughput": [5, 5, 5]}
	}`))
	if errRes != nil {
		t.Fatalf("callTool returned error: %v", errRes)
	}
	m := result.(map[string]interface{})
	content := m["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)
	if !strings.Contains(text, "percentiles") {
		t.Errorf("Tool response missing serialized result:\n%s", text)
	}
}
