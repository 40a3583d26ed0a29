package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// Path IDs must be parsed before they reach the database layer; a raw
// string handed to gorm as a primary-key condition would be interpreted
// as an inline SQL expression.
func TestAdminHandlersRejectNonNumericIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		handler gin.HandlerFunc
	}{
		{"service update", NewServiceHandler(nil).Update},
		{"staff update", NewStaffHandler(nil).Update},
		{"dress update", NewDressHandler(nil, nil).Update},
		{"dress delete", NewDressHandler(nil, nil).Delete},
	}
	ids := []string{"1 OR 1=1", "abc", "1;DROP TABLE services", ""}

	for _, tc := range cases {
		for _, id := range ids {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPatch, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: id}}

			tc.handler(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("%s with id %q: status = %d, want %d", tc.name, id, w.Code, http.StatusBadRequest)
				continue
			}
			var body struct {
				Code string `json:"error_code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if body.Code != "invalid_id" {
				t.Errorf("%s with id %q: code = %q, want invalid_id", tc.name, id, body.Code)
			}
		}
	}
}
