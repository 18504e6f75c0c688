package vm

// GateState is the state of the draw gate. The gate holds Dxyn instructions
// until the host signals the start of a new frame, so a programme draws at
// most once per frame. Holding is done by rewinding the programme counter so
// the draw is fetched again on the next Step().
type GateState int

const (
	// No draw is waiting
	GateIdle GateState = iota
	// A draw has been attempted and is waiting for the frame boundary
	GateArmed
	// The frame boundary has passed and the next draw may proceed
	GateReleased
)

func (s GateState) String() string {
	switch s {
	case GateIdle:
		return "idle"
	case GateArmed:
		return "armed"
	case GateReleased:
		return "released"
	}
	return "unknown"
}

// FrameBoundary should be called by the host once per displayed frame. It
// releases a draw held by the gate.
func (vm *VM) FrameBoundary() {
	vm.gate = GateReleased
}

// Gate returns the current state of the draw gate.
func (vm *VM) Gate() GateState {
	return vm.gate
}

// holdDraw returns true if the current draw instruction should be skipped and
// retried later.
func (vm *VM) holdDraw() bool {
	if !vm.gateUsed {
		return false
	}

	switch vm.gate {
	case GateIdle:
		vm.gate = GateArmed
		vm.pc -= 2
		return true
	case GateArmed:
		vm.pc -= 2
		return true
	}

	vm.gate = GateIdle
	return false
}

// waitKey implements Fx0A. With no key held the programme counter is rewound
// so the instruction is executed again on the next Step().
func (vm *VM) waitKey(x uint16) {
	if !vm.keyDown {
		vm.pc -= 2
		return
	}
	vm.variables[x] = vm.key
}
