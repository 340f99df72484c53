package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/config"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/repository"
	pkgerrors "github.com/Syedfarrukh0/rfid-backend-prac/pkg/errors"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/redis"
)

// ── device module business errors ──

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrDeviceUnauthorized = errors.New("device credentials rejected")
	ErrDeviceTaken        = errors.New("device already assigned")
	ErrDeviceUnavailable  = errors.New("device state store unavailable")
)

// Command types queued for terminals.
const CommandConnectWifi = "CONNECT_WIFI"

// DeviceService scan terminal lifecycle interface
type DeviceService interface {
	RegisterBatch(ctx context.Context, callerID string, req *dto.RegisterDevicesRequest) ([]dto.DeviceResponse, error)
	Authenticate(ctx context.Context, deviceUUID, secret string) (*model.Device, error)
	Assign(ctx context.Context, callerID, callerRole string, req *dto.AssignDeviceRequest) (*dto.DeviceResponse, error)
	List(ctx context.Context, callerID, callerRole string) ([]dto.DeviceResponse, error)
	Heartbeat(ctx context.Context, deviceUUID string, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error)
	QueueConnect(ctx context.Context, deviceUUID string, req *dto.ConnectCommandRequest) error
	Status(ctx context.Context, deviceUUID string) (*dto.DeviceStatusResponse, error)
	SubmitWifiScan(ctx context.Context, deviceUUID string, networks []dto.WifiNetwork) error
	GetWifiScan(ctx context.Context, deviceUUID string) ([]dto.WifiNetwork, error)
}

type deviceService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewDeviceService builds a DeviceService. rdb may be nil; the command
// queue and wifi scan cache then report ErrDeviceUnavailable.
func NewDeviceService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) DeviceService {
	return &deviceService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// RegisterBatch mints credentials for a batch of terminals. The secret
// is returned exactly once, in this response.
func (s *deviceService) RegisterBatch(ctx context.Context, callerID string, req *dto.RegisterDevicesRequest) ([]dto.DeviceResponse, error) {
	out := make([]dto.DeviceResponse, 0, len(req.Devices))
	for _, d := range req.Devices {
		secret, err := newDeviceSecret()
		if err != nil {
			return nil, err
		}

		device := &model.Device{
			UUID:   uuid.NewString(),
			Secret: secret,
			Name:   d.Name,
			Status: model.DeviceStatusPendingProvision,
		}
		device.CreatedBy = &callerID

		if err := s.repo.Device.Create(ctx, device); err != nil {
			s.logger.Error("registering device", zap.Error(err))
			return nil, err
		}

		out = append(out, dto.DeviceResponse{
			UUID:   device.UUID,
			Secret: device.Secret,
			Name:   device.Name,
			Status: device.Status,
		})
	}

	s.logger.Info("devices registered", zap.Int("count", len(out)))
	return out, nil
}

// Authenticate checks the credential pair a terminal presents.
func (s *deviceService) Authenticate(ctx context.Context, deviceUUID, secret string) (*model.Device, error) {
	device, err := s.repo.Device.GetByUUID(ctx, deviceUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceUnauthorized
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(device.Secret), []byte(secret)) != 1 {
		return nil, ErrDeviceUnauthorized
	}
	return device, nil
}

// Assign binds an unclaimed terminal to an account. A concurrent claim
// loses the optimistic-lock race and surfaces as ErrDeviceTaken.
func (s *deviceService) Assign(ctx context.Context, callerID, callerRole string, req *dto.AssignDeviceRequest) (*dto.DeviceResponse, error) {
	targetID := callerID
	if req.UserID != nil && isAdmin(callerRole) {
		targetID = *req.UserID
	}

	device, err := s.repo.Device.GetByUUID(ctx, req.UUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	if device.OwnerID != nil && *device.OwnerID != targetID {
		return nil, ErrDeviceTaken
	}

	device.OwnerID = &targetID
	device.UpdatedBy = &callerID

	if err := s.repo.Device.Update(ctx, device); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrDeviceTaken
		}
		s.logger.Error("assigning device", zap.Error(err))
		return nil, err
	}

	resp := deviceResponse(device)
	return &resp, nil
}

func (s *deviceService) List(ctx context.Context, callerID, callerRole string) ([]dto.DeviceResponse, error) {
	devices, err := s.repo.Device.List(ctx)
	if err != nil {
		s.logger.Error("listing devices", zap.Error(err))
		return nil, err
	}

	out := make([]dto.DeviceResponse, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		if !isAdmin(callerRole) && (d.OwnerID == nil || *d.OwnerID != callerID) {
			continue
		}
		out = append(out, deviceResponse(d))
	}
	return out, nil
}

// Heartbeat marks the terminal alive and hands back any pending
// command. Without Redis the heartbeat still lands; only command
// delivery is skipped.
func (s *deviceService) Heartbeat(ctx context.Context, deviceUUID string, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error) {
	if err := s.repo.Device.TouchHeartbeat(ctx, deviceUUID, model.DeviceStatusConnected, time.Now()); err != nil {
		s.logger.Error("recording heartbeat", zap.Error(err))
		return nil, err
	}

	resp := &dto.HeartbeatResponse{Command: "NONE"}
	if s.rdb == nil {
		return resp, nil
	}

	payload, err := s.rdb.PopDeviceCommand(ctx, deviceUUID)
	if err != nil {
		s.logger.Warn("fetching pending command", zap.Error(err))
		return resp, nil
	}
	if payload == nil {
		return resp, nil
	}

	var cmd dto.DeviceCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		s.logger.Warn("discarding malformed queued command", zap.Error(err))
		return resp, nil
	}

	resp.Command = cmd.Type
	resp.Payload = cmd.Payload
	return resp, nil
}

// QueueConnect stores wifi credentials for the terminal to pick up on
// its next heartbeat.
func (s *deviceService) QueueConnect(ctx context.Context, deviceUUID string, req *dto.ConnectCommandRequest) error {
	if s.rdb == nil {
		return ErrDeviceUnavailable
	}

	if _, err := s.repo.Device.GetByUUID(ctx, deviceUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}

	cmd := dto.DeviceCommand{
		Type: CommandConnectWifi,
		Payload: map[string]interface{}{
			"ssid":     req.SSID,
			"password": req.Password,
			"base_url": s.cfg.Server.BaseURL,
		},
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return s.rdb.QueueDeviceCommand(ctx, deviceUUID, payload, s.cfg.Device.CommandTTL)
}

// Status derives liveness from the last heartbeat against the
// configured threshold.
func (s *deviceService) Status(ctx context.Context, deviceUUID string) (*dto.DeviceStatusResponse, error) {
	device, err := s.repo.Device.GetByUUID(ctx, deviceUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	resp := &dto.DeviceStatusResponse{Status: model.DeviceStatusDisconnected}
	if device.LastHeartbeat != nil {
		resp.LastHeartbeat = device.LastHeartbeat.Format(time.RFC3339)
		if time.Since(*device.LastHeartbeat) <= s.cfg.Device.HeartbeatThreshold {
			resp.Status = model.DeviceStatusConnected
		}
	}
	return resp, nil
}

func (s *deviceService) SubmitWifiScan(ctx context.Context, deviceUUID string, networks []dto.WifiNetwork) error {
	if s.rdb == nil {
		return ErrDeviceUnavailable
	}
	payload, err := json.Marshal(networks)
	if err != nil {
		return err
	}
	return s.rdb.StoreWifiScan(ctx, deviceUUID, payload, s.cfg.Device.ScanTTL)
}

func (s *deviceService) GetWifiScan(ctx context.Context, deviceUUID string) ([]dto.WifiNetwork, error) {
	if s.rdb == nil {
		return nil, ErrDeviceUnavailable
	}
	payload, err := s.rdb.GetWifiScan(ctx, deviceUUID)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return []dto.WifiNetwork{}, nil
	}

	var networks []dto.WifiNetwork
	if err := json.Unmarshal(payload, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

func deviceResponse(d *model.Device) dto.DeviceResponse {
	resp := dto.DeviceResponse{
		UUID:   d.UUID,
		Name:   d.Name,
		Status: d.Status,
	}
	if d.Owner != nil {
		resp.OwnerEmail = d.Owner.Email
	}
	if d.LastHeartbeat != nil {
		resp.LastHeartbeat = d.LastHeartbeat.Format(time.RFC3339)
	}
	return resp
}

func newDeviceSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
