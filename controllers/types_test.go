package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind services.ErrorKind
		want int
	}{
		{services.KindRinkNotFound, http.StatusNotFound},
		{services.KindVisitNotFound, http.StatusNotFound},
		{services.KindEventNotFound, http.StatusNotFound},
		{services.KindNotEnoughVisits, http.StatusForbidden},
		{services.KindNeverVisited, http.StatusForbidden},
		{services.KindNotVisitOwner, http.StatusForbidden},
		{services.KindAlreadyReviewed, http.StatusConflict},
		{services.KindEventFull, http.StatusConflict},
		{services.KindCooldownActive, http.StatusBadRequest},
		{services.KindTooFarAway, http.StatusBadRequest},
		{services.KindRinkNoCoordinates, http.StatusBadRequest},
		{services.KindInvalidReview, http.StatusBadRequest},
		{services.KindVerificationTimeout, http.StatusGatewayTimeout},
		{services.KindStorage, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForKind(tc.kind); got != tc.want {
			t.Errorf("statusForKind(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestRespondServiceErrorIncludesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := &services.Error{
		Kind:    services.KindTooFarAway,
		Message: "Вы слишком далеко от катка",
		Details: map[string]interface{}{"distance": 1520.0, "maxDistance": 1000.0},
	}
	respondServiceError(c, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	if body["code"] != string(services.KindTooFarAway) {
		t.Errorf("code = %v, want %s", body["code"], services.KindTooFarAway)
	}
	if body["distance"] != 1520.0 {
		t.Errorf("distance detail = %v, want 1520", body["distance"])
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestRespondServiceErrorOpaqueForUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondServiceError(c, http.ErrBodyNotAllowed)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if body := rec.Body.String(); body == "" {
		t.Fatal("expected a JSON error body")
	}
}
