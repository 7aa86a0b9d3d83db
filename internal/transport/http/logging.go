package http

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

const (
	requestBodyLogKey = "http.request.body.summary"
	maxLoggedBody     = 2048
)

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			employeeID := "anonymous"
			if employee, ok := c.Get(contextEmployeeKey).(*domain.Employee); ok && employee != nil {
				employeeID = employee.ID.String()
			}

			payload := struct {
				Time       string      `json:"time"`
				EmployeeID string      `json:"employee_id"`
				Method     string      `json:"method"`
				URI        string      `json:"uri"`
				Status     int         `json:"status"`
				LatencyMS  int64       `json:"latency_ms"`
				Body       interface{} `json:"body,omitempty"`
				Error      string      `json:"error,omitempty"`
			}{
				Time:       v.StartTime.Format(time.RFC3339),
				EmployeeID: employeeID,
				Method:     v.Method,
				URI:        v.URI,
				Status:     v.Status,
				LatencyMS:  v.Latency.Milliseconds(),
			}
			if summary := c.Get(requestBodyLogKey); summary != nil {
				payload.Body = summary
			}
			if v.Error != nil {
				payload.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
	}))
}

// sanitizeBody produces a loggable view of a request body. JSON bodies get
// password-bearing keys redacted; file uploads and anything non-JSON are
// summarised rather than logged raw.
func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}

	lowered := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(lowered, "multipart/form-data") {
		return "multipart upload"
	}

	if strings.HasPrefix(lowered, "application/json") || json.Valid(body) {
		var data interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			return clampJSON(redactPasswords(data))
		}
	}

	if len(body) > maxLoggedBody {
		return "truncated"
	}
	text := string(body)
	if strings.Contains(strings.ToLower(text), "password") {
		return "redacted"
	}
	return text
}

func redactPasswords(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			if strings.Contains(strings.ToLower(key), "password") {
				out[key] = "redacted"
				continue
			}
			out[key] = redactPasswords(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = redactPasswords(item)
		}
		return out
	default:
		return v
	}
}

func clampJSON(value interface{}) interface{} {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]interface{}{"_truncated": true}
}
