// Package simulator estimates review workload for an sm2 deck.
//
// It provides three capabilities:
//
//   - [EstimateDistribution] derives per-quality answer probabilities and
//     average answer times from historical review logs.
//
//   - [Simulator.Run] plays a deck forward day by day with Monte Carlo
//     sampled answers, using [sm2.SelectDueItems] to build each day's batch
//     and an [sm2.Scheduler] to reschedule every answered item.
//
//   - [Sweep] repeats a run over several seeds concurrently so the spread
//     of outcomes can be compared.
//
// # Usage
//
//	dist, err := simulator.EstimateDistribution(logs)
//	sim, err := simulator.New(simulator.Config{Days: 90, Distribution: &dist}, sched, nil)
//	res, err := sim.Run(ctx, 500, start)
//
// Runs are deterministic for a given Config.Seed.
package simulator
