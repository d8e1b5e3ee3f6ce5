package predict

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// PredictMissile forward-simulates a guided projectile. On top of the
// ballistic loop, each step queries the guidance strategy for a steering
// direction (falling back to the normalized thrust axis) and, while fuel
// remains, applies thrust along it. With a controller present the thrust
// magnitude tracks the target speed |v0| + |thrust|, clamped to the
// configured thrust; without one the full thrust is applied until the fuel
// runs out.
func PredictMissile(cfg MissileConfig) Result {
	if cfg.DT <= 0 || cfg.MaxTime <= 0 {
		return Result{}
	}

	thrustMag := cfg.Thrust.Length()
	thrustDir := cfg.Thrust.Normalize()
	targetSpeed := cfg.StartVelocity.Length() + thrustMag
	if cfg.Controller != nil {
		cfg.Controller.DT = cfg.DT
	}

	pos := cfg.StartPosition
	vel := cfg.StartVelocity
	fuel := cfg.Fuel
	trajectory := make(Trajectory, 0, int(cfg.MaxTime/cfg.DT)+2)

	for t := float32(0); t <= cfg.MaxTime; t += cfg.DT {
		view := ProjectileView{Position: pos, Velocity: vel, Age: t}

		if tracker, ok := cfg.Guidance.(timeTracking); ok {
			tracker.setTime(t)
		}
		dir := thrustDir
		if cfg.Guidance != nil {
			if guided, ok := cfg.Guidance.Direction(view, cfg.DT); ok {
				dir = guided
			}
		}

		accel := cfg.Gravity
		if fuel > 0 {
			magnitude := thrustMag
			if cfg.Controller != nil {
				magnitude = vecmath.Clamp(cfg.Controller.Update(targetSpeed, vel.Length()), 0, thrustMag)
			}
			accel = accel.Add(dir.Scale(magnitude))
			fuel -= cfg.DT
		}
		if cfg.Env != nil {
			if extra, ok := cfg.Env(view, cfg.DT); ok {
				accel = accel.Add(extra)
			}
		}
		trajectory = append(trajectory, sampleAt(t, pos, vel, accel))

		prev := pos
		vel = vel.Add(accel.Scale(cfg.DT))
		pos = pos.Add(vel.Scale(cfg.DT))

		if pos.Y <= cfg.GroundHeight {
			impactTime, impactPos := interpolateImpact(t, cfg.DT, prev, pos, cfg.GroundHeight)
			trajectory = append(trajectory, sampleAt(impactTime, impactPos, vel, accel))
			return Result{
				Trajectory:     trajectory,
				ImpactTime:     impactTime,
				ImpactPosition: impactPos,
				Valid:          true,
			}
		}
	}
	return Result{Trajectory: trajectory}
}
