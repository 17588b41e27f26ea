package ecs

import (
	"math"

	"github.com/younwookim/mover/internal/domain/entity"
)

// Step advances the world by one rendered frame of dt seconds and returns
// how many fixed physics steps ran.
//
// Order per frame:
//  1. Controller.Update(dt) for every character
//  2. zero or more fixed steps, each running FixedUpdate on every character
//     and then the physics step (which refreshes contacts)
//  3. contact damage, then zone activation
//
// The accumulator keeps the leftover time between frames. When a frame needs
// more than maxSubsteps fixed steps the backlog is dropped.
func (w *World) Step(dt float64) int {
	for _, id := range w.characters {
		w.Controller[id].Update(dt)
	}

	w.intents = w.intents[:0]
	w.accumulator += dt
	n := 0
	for w.accumulator >= w.fixedStep && n < w.maxSubsteps {
		for _, id := range w.characters {
			w.intents = append(w.intents, w.Controller[id].FixedUpdate()...)
		}
		w.physics.Step(w.fixedStep)
		w.accumulator -= w.fixedStep
		n++
	}
	if w.accumulator >= w.fixedStep {
		w.logger.Debug("dropping physics backlog", "seconds", w.accumulator)
		w.accumulator = math.Mod(w.accumulator, w.fixedStep)
	}

	w.applyContactDamage()
	w.zones.Update(w)
	return n
}

// applyContactDamage hurts a player once per touch of a damaging entity.
// The touch has to end before the same entity can hurt again.
func (w *World) applyContactDamage() {
	for pid := range w.IsPlayer {
		health := w.Health[pid]
		if health == nil {
			continue
		}
		pbb := w.Body[pid].BB()

		for eid, damage := range w.Damage {
			pair := [2]entity.EntityID{pid, eid}
			if !pbb.Intersects(w.Body[eid].BB()) {
				delete(w.touching, pair)
				continue
			}
			if _, ok := w.touching[pair]; ok {
				continue
			}
			w.touching[pair] = struct{}{}
			health.Damage(damage)
		}
	}
}
