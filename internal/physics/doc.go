// Package physics provides the flow fields that drive particle motion.
//
// Each field implements [Field], defining the differential equations a
// particle's position follows:
//
//   - [Lorenz]: the classic butterfly attractor (σ=10, ρ=28, β=2.667)
//   - [Rossler]: a single-lobe chaotic band
//
// Fields also implement [Configurable] for runtime parameter adjustment.
package physics
