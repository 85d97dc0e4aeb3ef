package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stride/controller"
)

// parallelThreshold is the minimum character count to use parallel
// processing. Below this, single-threaded is faster due to goroutine
// overhead.
const parallelThreshold = 64

// characterSnapshot captures what one controller tick needs. Ctrl points at
// the live component; distinct characters never share controller state, so
// workers can tick them concurrently.
type characterSnapshot struct {
	Entity ecs.Entity
	Ctrl   *controller.Controller
	Frame  controller.Frame
}

// characterIntent is the computed output, applied after the compute phase.
type characterIntent struct {
	Body uint64
	Out  controller.Output
}

// workChunk is a range of snapshots for one worker.
type workChunk struct {
	start, end int
}

// parallelState holds the persistent worker pool and its buffers.
type parallelState struct {
	snapshots  []characterSnapshot
	intents    []characterIntent
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]characterSnapshot, 0, 128),
		intents:    make([]characterIntent, 0, 128),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// tickControllers runs every character's controller for this tick. Phase A
// snapshots body state, phase B computes forces (parallel above the
// threshold), phase C applies the intents in entity order so force
// accumulation stays deterministic.
func (g *Game) tickControllers(dt float32) {
	g.parallel.snapshots = g.parallel.snapshots[:0]

	query := g.characterFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, ref, char, input := query.Get()

		body := g.physics.Body(ref.ID)
		if body == nil {
			continue
		}

		g.parallel.snapshots = append(g.parallel.snapshots, characterSnapshot{
			Entity: entity,
			Ctrl:   &char.Controller,
			Frame: controller.Frame{
				Input: controller.Input{
					Movement: input.Movement,
					Jumping:  input.Jumping,
				},
				Velocity:        body.Velocity,
				AngularVelocity: body.AngularVelocity,
				Mass:            body.Mass,
				Position:        body.Position,
				Rotation:        body.Rotation,
				DT:              dt,
			},
		})
	}

	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(g.parallel.intents) < n {
		g.parallel.intents = make([]characterIntent, n)
	}
	g.parallel.intents = g.parallel.intents[:n]

	if n < parallelThreshold {
		g.computeChunk(0, n)
	} else {
		g.computeParallel(n)
	}

	g.applyIntents()
}

// computeParallel dispatches chunks to the worker pool and waits.
func (g *Game) computeParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk ticks a range of controllers. The physics world is read-only
// here; ground casts may run concurrently.
func (g *Game) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &g.parallel.snapshots[i]
		g.parallel.intents[i] = characterIntent{
			Body: snap.Ctrl.Body,
			Out:  snap.Ctrl.Tick(g.physics, snap.Frame),
		}
	}
}

// applyIntents pushes the computed forces into the physics world, plus the
// reaction forces against whatever each character stands on.
func (g *Game) applyIntents() {
	for i := range g.parallel.intents {
		it := &g.parallel.intents[i]

		g.physics.ApplyForce(it.Body, it.Out.Linear)
		g.physics.ApplyTorque(it.Body, it.Out.Angular)

		if it.Out.HasGround {
			g.physics.ApplyForceAt(it.Out.Ground, it.Out.GroundForce, it.Out.GroundPoint)
		}
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
