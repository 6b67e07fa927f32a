package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pump-fun-sdk-go/internal/config"
	"pump-fun-sdk-go/pkg/pumpfun"
	"pump-fun-sdk-go/pkg/utils"
)

// SubscriptionKind selects the websocket subscription method
type SubscriptionKind string

// Subscription kinds
const (
	SubscribeAccount SubscriptionKind = "account"
	SubscribeLogs    SubscriptionKind = "logs"
	SubscribeBlock   SubscriptionKind = "block"
)

// ErrUnknownSubscription is returned for a kind other than account, logs or block
var ErrUnknownSubscription = errors.New("unknown subscription type")

// EventHandler handles one websocket notification
type EventHandler func(message WSMessage) error

// WSMessage is a JSON-RPC message exchanged over the websocket
type WSMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *int              `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  json.RawMessage   `json:"params,omitempty"`
	Result  json.RawMessage   `json:"result,omitempty"`
	Error   *jsonrpc.RPCError `json:"error,omitempty"`
}

// AccountNotification represents an accountSubscribe notification
type AccountNotification struct {
	Subscription int `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	} `json:"result"`
}

// LogsNotification represents a logs notification
type LogsNotification struct {
	Subscription int `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Signature string      `json:"signature"`
			Err       interface{} `json:"err"`
			Logs      []string    `json:"logs"`
		} `json:"value"`
	} `json:"result"`
}

// BlockNotification represents a block notification
type BlockNotification struct {
	Subscription int `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
}

// Subscriber opens websocket subscriptions. Each subscription owns its connection
// and runs until the context is cancelled or the connection drops; nothing reconnects.
type Subscriber struct {
	url        string
	commitment string
	dialer     *websocket.Dialer
	logger     *logrus.Logger
}

// NewSubscriber creates a subscriber for the configured websocket endpoint
func NewSubscriber(cfg *config.Config, logger *logrus.Logger) *Subscriber {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	return &Subscriber{
		url:        cfg.WSUrl,
		commitment: cfg.Commitment,
		dialer:     &dialer,
		logger:     logger,
	}
}

// subscriptionRequest returns the subscribe method and params for kind
func (s *Subscriber) subscriptionRequest(kind SubscriptionKind, target string) (string, []interface{}, error) {
	switch kind {
	case SubscribeAccount:
		return "accountSubscribe", []interface{}{
			target,
			map[string]interface{}{
				"commitment": s.commitment,
				"encoding":   "base64",
			},
		}, nil
	case SubscribeLogs:
		return "logsSubscribe", []interface{}{
			map[string]interface{}{
				"mentions": []string{target},
			},
			map[string]interface{}{
				"commitment": s.commitment,
			},
		}, nil
	case SubscribeBlock:
		return "blockSubscribe", []interface{}{
			map[string]interface{}{
				"mentionsAccountOrProgram": target,
			},
			map[string]interface{}{
				"commitment":                     s.commitment,
				"encoding":                       "base64",
				"transactionDetails":             "full",
				"maxSupportedTransactionVersion": 0,
			},
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownSubscription, kind)
	}
}

// Subscribe opens one subscription and calls handler for every notification.
// It blocks until ctx is done, the server closes the connection or rejects the request.
func (s *Subscriber) Subscribe(ctx context.Context, kind SubscriptionKind, target string, handler EventHandler) error {
	method, params, err := s.subscriptionRequest(kind, target)
	if err != nil {
		return err
	}

	log := s.logger.WithFields(logrus.Fields{
		"method": method,
		"target": target,
	})

	conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if resp != nil {
			log.WithFields(logrus.Fields{
				"status":      resp.Status,
				"status_code": resp.StatusCode,
			}).Error("WebSocket connection failed")
		}
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}
	defer conn.Close()

	conn.SetReadLimit(16 * 1024 * 1024)

	// unblock ReadMessage on cancellation
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	id := 1
	request, err := json.Marshal(struct {
		JSONRPC string        `json:"jsonrpc"`
		ID      int           `json:"id"`
		Method  string        `json:"method"`
		Params  []interface{} `json:"params"`
	}{"2.0", id, method, params})
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, request); err != nil {
		return fmt.Errorf("failed to send subscription: %w", err)
	}
	log.Debug("Sent WebSocket subscription request")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket closed by server")
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		var message WSMessage
		if err := json.Unmarshal(data, &message); err != nil {
			log.WithError(err).WithField("data", truncate(string(data), 200)).Warn("Failed to unmarshal WebSocket message")
			continue
		}

		switch {
		case message.Error != nil:
			return fmt.Errorf("%s rejected: %d %s", method, message.Error.Code, message.Error.Message)
		case message.ID != nil && *message.ID == id:
			log.WithField("subscription", string(message.Result)).Info("WebSocket subscription confirmed")
		case message.Method != "":
			if err := handler(message); err != nil {
				log.WithError(err).WithField("notification", message.Method).Error("Notification handler error")
			}
		}
	}
}

// WatchBondingCurve streams decoded bonding curve states of one account
func (s *Subscriber) WatchBondingCurve(ctx context.Context, address solana.PublicKey, handler func(*pumpfun.BondingCurveState) error) error {
	return s.Subscribe(ctx, SubscribeAccount, address.String(), func(message WSMessage) error {
		var notification AccountNotification
		if err := json.Unmarshal(message.Params, &notification); err != nil {
			return fmt.Errorf("failed to unmarshal account notification: %w", err)
		}

		data, err := decodeAccountData(notification.Result.Value.Data)
		if err != nil {
			return err
		}

		state, err := pumpfun.DecodeBondingCurve(data)
		if err != nil {
			return fmt.Errorf("invalid bonding curve data: %w", err)
		}
		return handler(state)
	})
}

// MonitorNewTokens calls handler for program logs that record a Create instruction
func (s *Subscriber) MonitorNewTokens(ctx context.Context, handler func(LogsNotification) error) error {
	return s.Subscribe(ctx, SubscribeLogs, pumpfun.ProgramID.String(), func(message WSMessage) error {
		var notification LogsNotification
		if err := json.Unmarshal(message.Params, &notification); err != nil {
			return fmt.Errorf("failed to unmarshal logs notification: %w", err)
		}
		if notification.Result.Value.Err != nil || !HasInstructionLog(notification.Result.Value.Logs, "Create") {
			return nil
		}
		return handler(notification)
	})
}

// MonitorBlocks calls handler for every block mentioning the pump.fun program
func (s *Subscriber) MonitorBlocks(ctx context.Context, handler func(BlockNotification) error) error {
	return s.Subscribe(ctx, SubscribeBlock, pumpfun.ProgramID.String(), func(message WSMessage) error {
		var notification BlockNotification
		if err := json.Unmarshal(message.Params, &notification); err != nil {
			return fmt.Errorf("failed to unmarshal block notification: %w", err)
		}
		if len(notification.Result.Value) == 0 {
			return nil
		}
		return handler(notification)
	})
}

// HasInstructionLog reports whether logs contain "Program log: Instruction: <name>"
func HasInstructionLog(logs []string, name string) bool {
	want := "Program log: Instruction: " + name
	for _, line := range logs {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

func decodeAccountData(data []string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("account notification carries no data")
	}
	encoding := utils.EncodingBase64
	if len(data) > 1 {
		encoding = data[1]
	}
	raw, err := utils.DecodeWithEncoding(data[0], encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account data: %w", err)
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
