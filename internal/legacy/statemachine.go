package legacy

// StateKind identifies the extraction state.
type StateKind int

const (
	// StateScanning - sampling sparsely while no text is on screen; the
	// skip widens the longer text stays absent.
	StateScanning StateKind = iota
	// StateLocked - text appeared; waiting for it to persist before
	// extracting.
	StateLocked
	// StateCooldown - just extracted; skipping frames while the same
	// subtitle persists.
	StateCooldown
)

// ExtractionState is the current state plus its counter: the scan skip,
// the consecutive-text count, or the cooldown remainder.
type ExtractionState struct {
	Kind    StateKind
	Counter int
}

// StateAction is the state machine's verdict for one frame.
type StateAction int

const (
	ActionContinue StateAction = iota
	ActionSkipFrames
	ActionExtract
	ActionDrop
)

// StateConfig tunes the scan/lock/cooldown cycle.
type StateConfig struct {
	InitialSkip    int
	MaxSkip        int
	MinLockFrames  int
	CooldownFrames int
}

func DefaultStateConfig() StateConfig {
	return StateConfig{InitialSkip: 5, MaxSkip: 15, MinLockFrames: 3, CooldownFrames: 30}
}

func HighMotionStateConfig() StateConfig {
	return StateConfig{InitialSkip: 2, MaxSkip: 8, MinLockFrames: 2, CooldownFrames: 20}
}

func LowMotionStateConfig() StateConfig {
	return StateConfig{InitialSkip: 8, MaxSkip: 20, MinLockFrames: 5, CooldownFrames: 45}
}

// StateMachine adapts sampling density to content: long no-text stretches
// inflate the scan skip; once text appears it extracts promptly, then
// cools down so the same persisting subtitle is not re-extracted.
type StateMachine struct {
	state        ExtractionState
	config       StateConfig
	frameCounter uint64
}

func NewStateMachine() *StateMachine {
	return NewStateMachineWithConfig(DefaultStateConfig())
}

func NewStateMachineWithConfig(config StateConfig) *StateMachine {
	return &StateMachine{
		state:  ExtractionState{Kind: StateScanning, Counter: config.InitialSkip},
		config: config,
	}
}

// ProcessFrame advances the machine by one frame. skipCount is only
// meaningful when the action is ActionSkipFrames.
func (m *StateMachine) ProcessFrame(hasText, isDuplicate bool) (action StateAction, skipCount int) {
	m.frameCounter++

	newState, action, skipCount := transition(m.state, hasText, isDuplicate, m.config)
	m.state = newState
	return action, skipCount
}

func transition(s ExtractionState, hasText, isDuplicate bool, config StateConfig) (ExtractionState, StateAction, int) {
	extractOrDrop := func() StateAction {
		if isDuplicate {
			return ActionDrop
		}
		return ActionExtract
	}

	switch s.Kind {
	case StateScanning:
		if hasText {
			// The original compares a literal 1 against MinLockFrames
			// here, so with the default of 3 this never takes the
			// immediate-extract branch; kept as observed.
			if 1 >= config.MinLockFrames {
				return ExtractionState{Kind: StateCooldown, Counter: config.CooldownFrames}, extractOrDrop(), 0
			}
			return ExtractionState{Kind: StateLocked, Counter: 1}, ActionContinue, 0
		}
		newSkip := s.Counter + 1
		if newSkip > config.MaxSkip {
			newSkip = config.MaxSkip
		}
		return ExtractionState{Kind: StateScanning, Counter: newSkip}, ActionSkipFrames, s.Counter

	case StateLocked:
		if hasText {
			newCount := s.Counter + 1
			if newCount >= config.MinLockFrames {
				return ExtractionState{Kind: StateCooldown, Counter: config.CooldownFrames}, extractOrDrop(), 0
			}
			return ExtractionState{Kind: StateLocked, Counter: newCount}, ActionContinue, 0
		}
		// Text vanished mid-lock: if it held long enough, extract what we
		// saw; otherwise fall back to scanning.
		if s.Counter >= config.MinLockFrames/2 {
			return ExtractionState{Kind: StateCooldown, Counter: config.CooldownFrames}, extractOrDrop(), 0
		}
		return ExtractionState{Kind: StateScanning, Counter: config.InitialSkip}, ActionContinue, 0

	default: // StateCooldown
		newRemaining := s.Counter - 1
		if newRemaining <= 0 {
			return ExtractionState{Kind: StateScanning, Counter: config.InitialSkip}, ActionContinue, 0
		}
		return ExtractionState{Kind: StateCooldown, Counter: newRemaining}, ActionSkipFrames, 1
	}
}

// CurrentState returns the machine's current state.
func (m *StateMachine) CurrentState() ExtractionState { return m.state }

// FrameCount is the number of frames processed since the last reset.
func (m *StateMachine) FrameCount() uint64 { return m.frameCounter }

// Reset returns to the initial scanning state.
func (m *StateMachine) Reset() {
	m.state = ExtractionState{Kind: StateScanning, Counter: m.config.InitialSkip}
	m.frameCounter = 0
}
