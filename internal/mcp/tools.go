package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "run_delivery_forecast",
				"description": "Run a Monte-Carlo delivery forecast BEFORE a project starts: given a backlog range (min/max items) and a throughput history (items completed per period), forecast how many periods the work will take at 50/85/95% confidence.\n\n" +
					"STRICT GUARDRAIL: NEVER produce probability estimates yourself if this tool fails or reports an 'indefinite' status. A 100% unresolved result means the history cannot support the requested scope; say so instead of guessing dates.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"min_items":  map[string]interface{}{"type": "integer", "description": "Best-case backlog size (items)."},
						"max_items":  map[string]interface{}{"type": "integer", "description": "Worst-case backlog size (items). Equal to min_items for a fixed scope."},
						"throughput": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Observed items completed per historical period, oldest first (e.g. [6,5,4,6,3])."},
						"trials":     map[string]interface{}{"type": "integer", "description": "Simulation trial count. Default 10000."},
						"horizon":    map[string]interface{}{"type": "integer", "description": "Hard cap on periods per trial. Trials that hit it are reported as unresolved."},
						"levels":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}, "description": "Confidence levels to report, each in (0,1). Default [0.5, 0.85, 0.95]."},
					},
					"required": []string{"min_items", "max_items", "throughput"},
				},
			},
			map[string]interface{}{
				"name": "run_risk_horizon",
				"description": "Run a Monte-Carlo burn-up forecast for a RUNNING project: given total scope, per-period actuals so far and a throughput history, project the cone of uncertainty (10/50/90% progress bands per future period) and completion-period confidence markers.\n\n" +
					"The actuals are resampled together with the history, so the cone narrows as real progress accumulates.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"total_scope": map[string]interface{}{"type": "integer", "description": "Total items in the project."},
						"actuals":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Items completed in each elapsed period, oldest first (e.g. [2,5,4]). May be empty at project start."},
						"throughput":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Historical baseline: items completed per period before this project."},
						"trials":      map[string]interface{}{"type": "integer", "description": "Simulation trial count. Default 10000."},
						"horizon":     map[string]interface{}{"type": "integer", "description": "Future periods to project. Default 30."},
						"cone_levels": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}, "description": "Cone percentile levels, each in (0,1). Default [0.1, 0.5, 0.9]."},
					},
					"required": []string{"total_scope", "throughput"},
				},
			},
		},
	}
}
