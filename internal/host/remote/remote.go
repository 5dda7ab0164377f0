// internal/host/remote/remote.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/pkg/core"
)

// Object paths of the editor singletons used by the client.
const (
	EditorSubsystemPath  = "/Script/UnrealEd.Default__UnrealEditorSubsystem"
	ActorSubsystemPath   = "/Script/UnrealEd.Default__EditorActorSubsystem"
	GameplayStaticsPath  = "/Script/Engine.Default__GameplayStatics"
	objectCallEndpoint   = "/remote/object/call"
	infoEndpoint         = "/remote/info"
	defaultClientTimeout = 10 * time.Second
)

// Client drives a running editor through its Remote Control HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new Remote Control client. A zero timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned when the editor answers a call with a non-200 status.
type StatusError struct {
	Function   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Function, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Function, e.StatusCode, e.Body)
}

type objectCall struct {
	ObjectPath          string `json:"objectPath"`
	FunctionName        string `json:"functionName"`
	Parameters          any    `json:"parameters,omitempty"`
	GenerateTransaction bool   `json:"generateTransaction"`
}

type vector struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

type rotator struct {
	Pitch float64 `json:"Pitch"`
	Yaw   float64 `json:"Yaw"`
	Roll  float64 `json:"Roll"`
}

type stringReturn struct {
	ReturnValue string `json:"ReturnValue"`
}

// Healthcheck checks if the Remote Control server is reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+infoEndpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}

// ActiveScene returns the path of the editor world.
func (c *Client) ActiveScene(ctx context.Context) (host.Scene, error) {
	var out stringReturn
	err := c.call(ctx, objectCall{
		ObjectPath:   EditorSubsystemPath,
		FunctionName: "GetEditorWorld",
	}, &out)
	if err != nil {
		if subsystemUnreachable(err) {
			return "", fmt.Errorf("%w: %w", host.ErrNoEditorSubsystem, err)
		}
		return "", err
	}
	if out.ReturnValue == "" {
		return "", host.ErrNoScene
	}
	return host.Scene(out.ReturnValue), nil
}

// CountEntities returns the number of actors of class in scene.
func (c *Client) CountEntities(ctx context.Context, scene host.Scene, class string) (int, error) {
	var out struct {
		OutActors []string `json:"OutActors"`
	}
	err := c.call(ctx, objectCall{
		ObjectPath:   GameplayStaticsPath,
		FunctionName: "GetAllActorsOfClass",
		Parameters: map[string]any{
			"WorldContextObject": string(scene),
			"ActorClass":         class,
		},
	}, &out)
	if err != nil {
		return 0, fmt.Errorf("failed to list actors of class %s: %w", class, err)
	}
	return len(out.OutActors), nil
}

// Spawn creates an actor in the level currently open in the editor.
// The editor always spawns into its own editor world; scene is not sent.
func (c *Client) Spawn(ctx context.Context, scene host.Scene, class string, location core.Coordinate, rotation core.Rotation) host.SpawnResult {
	var out stringReturn
	err := c.call(ctx, objectCall{
		ObjectPath:   ActorSubsystemPath,
		FunctionName: "SpawnActorFromClass",
		Parameters: map[string]any{
			"ActorClass": class,
			"Location":   vector{X: location.X, Y: location.Y, Z: location.Z},
			"Rotation":   rotator{Pitch: rotation.Pitch, Yaw: rotation.Yaw, Roll: rotation.Roll},
		},
		GenerateTransaction: true,
	}, &out)
	if err != nil {
		return host.Failed(fmt.Errorf("%w: %w", host.ErrSpawnFailed, err))
	}
	if out.ReturnValue == "" {
		return host.Failed(nil)
	}
	return host.Spawned(host.Entity(out.ReturnValue))
}

// SetLabel sets the outliner label of entity.
func (c *Client) SetLabel(ctx context.Context, entity host.Entity, label string) error {
	err := c.call(ctx, objectCall{
		ObjectPath:   string(entity),
		FunctionName: "SetActorLabel",
		Parameters: map[string]any{
			"NewActorLabel": label,
			"bMarkDirty":    true,
		},
		GenerateTransaction: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to label %s: %w", entity, err)
	}
	return nil
}

// subsystemUnreachable reports whether err means the editor subsystem could
// not be resolved: the request never got an answer, or the object path 404s.
func subsystemUnreachable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	var reqErr *requestError
	return errors.As(err, &reqErr)
}

// requestError is a call that got no HTTP response.
type requestError struct {
	Function string
	Err      error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Function, e.Err)
}

func (e *requestError) Unwrap() error {
	return e.Err
}

// call sends an object call and decodes the response into out when non-nil.
func (c *Client) call(ctx context.Context, oc objectCall, out any) error {
	body, err := json.Marshal(oc)
	if err != nil {
		return fmt.Errorf("failed to encode %s call: %w", oc.FunctionName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+objectCallEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &requestError{Function: oc.FunctionName, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", oc.FunctionName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Function:   oc.FunctionName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", oc.FunctionName, err)
	}
	return nil
}
