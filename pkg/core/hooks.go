package core

// stateBase is satisfied by any struct that embeds StateBase.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseListenable subscribes onChange to a listenable. The subscription is
// removed when the state is disposed.
func UseListenable(s stateBase, listenable Listenable, onChange func()) {
	base := s.state()
	unsub := listenable.AddListener(onChange)
	base.OnDispose(unsub)
}
