// Package handlers implements the HTTP surface of the prediction engine.
// Every request builds its own predictor state, so concurrent requests
// never share a filter, controller, or trajectory.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ballisto/ballisto/pkg/control"
	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/predict"
	"github.com/ballisto/ballisto/pkg/store"
	"github.com/ballisto/ballisto/pkg/vecmath"
	"github.com/google/uuid"
)

// Vec3 is the wire representation of a vector.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (v Vec3) toVec() vecmath.Vec3 {
	return vecmath.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(v vecmath.Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// PredictRequest configures a ballistic prediction.
type PredictRequest struct {
	StartPosition     Vec3    `json:"startPosition"`
	StartVelocity     Vec3    `json:"startVelocity"`
	Gravity           *Vec3   `json:"gravity,omitempty"`
	GroundHeight      float32 `json:"groundHeight"`
	MaxTime           float32 `json:"maxTime"`
	DT                float32 `json:"dt"`
	IncludeTrajectory bool    `json:"includeTrajectory"`
}

// MissileRequest configures a guided prediction.
type MissileRequest struct {
	PredictRequest
	Thrust         Vec3     `json:"thrust"`
	Fuel           float32  `json:"fuel"`
	GuidanceMode   string   `json:"guidanceMode,omitempty"` // none, point, lead
	Target         Vec3     `json:"target"`
	TargetVelocity Vec3     `json:"targetVelocity"`
	Controller     *PIDSpec `json:"controller,omitempty"`
}

// PIDSpec carries controller gains over the wire.
type PIDSpec struct {
	Kp          float32 `json:"kp"`
	Ki          float32 `json:"ki"`
	Kd          float32 `json:"kd"`
	OutputLimit float32 `json:"outputLimit"`
	AntiWindup  bool    `json:"antiWindup"`
}

// TrajectorySample is one wire sample of a predicted trajectory.
type TrajectorySample struct {
	Time     float32 `json:"time"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
}

// PredictResponse reports a prediction outcome.
type PredictResponse struct {
	ID             string             `json:"id"`
	Kind           string             `json:"kind"`
	Valid          bool               `json:"valid"`
	ImpactTime     float32            `json:"impactTime"`
	ImpactPosition Vec3               `json:"impactPosition"`
	Samples        int                `json:"samples"`
	Trajectory     []TrajectorySample `json:"trajectory,omitempty"`
}

// LaunchRequest configures an inverse launch solution. Mode "force" solves
// for the direction and flight time from a launch force; mode "time"
// solves for the force and direction that hit at HitTime.
type LaunchRequest struct {
	Start   Vec3    `json:"start"`
	Target  Vec3    `json:"target"`
	Mode    string  `json:"mode"`
	Force   float32 `json:"force"`
	Mass    float32 `json:"mass"`
	Gravity float32 `json:"gravity"`
	Wind    *Vec3   `json:"wind,omitempty"`
	HitTime float32 `json:"hitTime"`
}

// LaunchResponse reports an inverse launch solution.
type LaunchResponse struct {
	Valid     bool    `json:"valid"`
	Direction Vec3    `json:"direction"`
	Force     float32 `json:"force"`
	TimeToHit float32 `json:"timeToHit"`
}

// HandlePredict runs a ballistic forward prediction.
func HandlePredict(resultStore store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		cfg, err := projectileConfig(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result := predict.PredictProjectile(cfg)
		writeResult(w, r, resultStore, store.KindProjectile, result, req.IncludeTrajectory)
	}
}

// HandlePredictMissile runs a guided forward prediction.
func HandlePredictMissile(resultStore store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		cfg, err := missileConfig(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result := predict.PredictMissile(cfg)
		writeResult(w, r, resultStore, store.KindMissile, result, req.IncludeTrajectory)
	}
}

// HandleLaunch solves the inverse launch problem.
func HandleLaunch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LaunchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}

		var param predict.LaunchParam
		var ok bool
		switch req.Mode {
		case "", "force":
			if req.Wind != nil {
				param, ok = predict.CalcLaunchParamWithEnv(req.Start.toVec(), req.Target.toVec(), req.Force, req.Mass, req.Gravity, req.Wind.toVec())
			} else {
				param, ok = predict.CalcLaunchParam(req.Start.toVec(), req.Target.toVec(), req.Force, req.Mass, req.Gravity)
			}
		case "time":
			wind := vecmath.Vec3{}
			if req.Wind != nil {
				wind = req.Wind.toVec()
			}
			param, ok = predict.CalcLaunchParamAtTime(req.Start.toVec(), req.Target.toVec(), req.HitTime, req.Mass, vecmath.Vec3{Y: -req.Gravity}, wind)
		default:
			http.Error(w, fmt.Sprintf("Unknown launch mode %q", req.Mode), http.StatusBadRequest)
			return
		}

		resp := LaunchResponse{
			Valid:     ok,
			Direction: fromVec(param.Direction),
			Force:     param.Force,
			TimeToHit: param.TimeToHit,
		}
		writeJSON(w, resp)
	}
}

func projectileConfig(req PredictRequest) (predict.ProjectileConfig, error) {
	if req.DT <= 0 {
		return predict.ProjectileConfig{}, fmt.Errorf("dt must be positive")
	}
	if req.MaxTime <= 0 {
		return predict.ProjectileConfig{}, fmt.Errorf("maxTime must be positive")
	}
	gravity := vecmath.Vec3{Y: -9.81}
	if req.Gravity != nil {
		gravity = req.Gravity.toVec()
	}
	return predict.ProjectileConfig{
		StartPosition: req.StartPosition.toVec(),
		StartVelocity: req.StartVelocity.toVec(),
		Gravity:       gravity,
		GroundHeight:  req.GroundHeight,
		MaxTime:       req.MaxTime,
		DT:            req.DT,
	}, nil
}

func missileConfig(req MissileRequest) (predict.MissileConfig, error) {
	base, err := projectileConfig(req.PredictRequest)
	if err != nil {
		return predict.MissileConfig{}, err
	}
	cfg := predict.MissileConfig{
		ProjectileConfig: base,
		Thrust:           req.Thrust.toVec(),
		Fuel:             req.Fuel,
	}
	switch req.GuidanceMode {
	case "", "none":
		cfg.Guidance = predict.NoGuidance{}
	case "point":
		cfg.Guidance = predict.ToPoint{Target: req.Target.toVec()}
	case "lead":
		cfg.Guidance = predict.Lead{
			TargetPosition: req.Target.toVec(),
			TargetVelocity: req.TargetVelocity.toVec(),
		}
	default:
		return predict.MissileConfig{}, fmt.Errorf("unknown guidance mode %q", req.GuidanceMode)
	}
	if req.Controller != nil {
		pid := control.NewPID(req.Controller.Kp, req.Controller.Ki, req.Controller.Kd, req.DT)
		pid.OutputLimit = req.Controller.OutputLimit
		pid.AntiWindup = req.Controller.AntiWindup
		cfg.Controller = pid
	}
	return cfg, nil
}

func writeResult(w http.ResponseWriter, r *http.Request, resultStore store.Store, kind string, result predict.Result, includeTrajectory bool) {
	id := uuid.New().String()
	if resultStore != nil {
		if err := resultStore.SavePrediction(r.Context(), store.FromResult(id, kind, result)); err != nil {
			log.Error("failed to save prediction %s: %v", id, err)
		}
	}

	resp := PredictResponse{
		ID:             id,
		Kind:           kind,
		Valid:          result.Valid,
		ImpactTime:     result.ImpactTime,
		ImpactPosition: fromVec(result.ImpactPosition),
		Samples:        len(result.Trajectory),
	}
	if includeTrajectory {
		resp.Trajectory = wireTrajectory(result.Trajectory)
	}
	log.Debug("prediction %s: valid=%v samples=%d", resp.ID, resp.Valid, resp.Samples)
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func wireTrajectory(trajectory predict.Trajectory) []TrajectorySample {
	samples := make([]TrajectorySample, len(trajectory))
	for i, s := range trajectory {
		samples[i] = TrajectorySample{
			Time:     s.Time,
			Position: fromVec(s.State.Linear.Position),
			Velocity: fromVec(s.State.Linear.Velocity),
		}
	}
	return samples
}
