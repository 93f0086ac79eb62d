package notifier

import "go.uber.org/fx"

// Module provides the change broadcaster to the fx container.
var Module = fx.Provide(func() *Broadcaster { return New(0) })
