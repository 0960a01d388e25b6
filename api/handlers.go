package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/domain"
)

type registerRequest struct {
	UserId     string            `json:"userId"`
	Token      string            `json:"token"`
	Role       domain.Role       `json:"role,omitempty"`
	DeviceInfo map[string]string `json:"deviceInfo,omitempty"`
}

type unregisterRequest struct {
	UserId string `json:"userId,omitempty"`
	Token  string `json:"token,omitempty"`
}

type broadcastRequest struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
	Targets []string          `json:"targets,omitempty"`
}

type shopStatusRequest struct {
	IsOpen bool `json:"isOpen"`
}

func (s *service) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "online",
		"message":   "push server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *service) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	activeUsers, err := s.registry.Register(r.Context(), req.UserId, req.Token, req.Role, req.DeviceInfo)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"activeUsers": activeUsers,
	})
}

func (s *service) unregister(w http.ResponseWriter, r *http.Request) {
	var req unregisterRequest
	if !decode(w, r, &req) {
		return
	}
	removed, err := s.registry.Unregister(r.Context(), req.UserId, req.Token)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"removed": removed,
	})
}

func (s *service) tokenCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.registry.Count(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	message := fmt.Sprintf("%d devices registered", count)
	if count == 0 {
		message = "no devices registered yet"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"activeUsers": count,
		"message":     message,
	})
}

func (s *service) broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if !decode(w, r, &req) {
		return
	}
	report, err := s.engine.Broadcast(r.Context(), domain.BroadcastRequest{
		Title:   req.Title,
		Body:    req.Body,
		Data:    req.Data,
		Targets: req.Targets,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeReport(w, report)
}

func (s *service) getShopStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.audit.GetShopStatus(r.Context())
	if err != nil {
		writeErr(w, domain.StoreUnavailable(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  status,
	})
}

func (s *service) setShopStatus(w http.ResponseWriter, r *http.Request) {
	var req shopStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.audit.SetShopStatus(r.Context(), domain.ShopStatus{
		IsOpen:    req.IsOpen,
		UpdatedBy: "api",
	}); err != nil {
		writeErr(w, domain.StoreUnavailable(err))
		return
	}
	if err := s.audit.AddLog(r.Context(), domain.AuditRecord{
		Kind:    domain.AuditStatusChange,
		Trigger: "api",
		Message: fmt.Sprintf("shop status set to open=%v", req.IsOpen),
	}); err != nil {
		log.Error("audit write failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *service) closeShop(w http.ResponseWriter, r *http.Request) {
	report, err := s.scheduler.RunNow(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeReport(w, report)
}

func (s *service) auditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.audit.ListLogs(r.Context(), limit)
	if err != nil {
		writeErr(w, domain.StoreUnavailable(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"logs":    logs,
	})
}

func writeReport(w http.ResponseWriter, report domain.DeliveryReport) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"successCount":   report.Success,
		"failureCount":   report.Failure,
		"totalAttempted": report.Attempted,
		"message":        fmt.Sprintf("sent to %d of %d devices", report.Success, report.Attempted),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, domain.InvalidInputf("bad request body: %v", err))
		return false
	}
	return true
}

func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrTransportUnavailable):
		code = http.StatusBadGateway
	case errors.Is(err, domain.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("response encode", zap.Error(err))
	}
}
