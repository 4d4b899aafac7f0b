package control

import (
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
)

// BuildMediator wires every command and query handler of spec §6 onto a
// fresh Mediator, the way the teacher's internal/application/setup package
// wires its much larger handler set. store is shared by every handler;
// reader backs GetWarehouseSnapshotQuery only. strictInvariants is forwarded
// to the tick handler (spec §7 debug-build behaviour).
func BuildMediator(store Store, reader queries.SnapshotReader, strictInvariants bool) (mediator.Mediator, error) {
	m := mediator.New()

	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*commands.InitialiseCommand](m, commands.NewInitialiseHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*commands.SubmitOrderCommand](m, commands.NewSubmitOrderHandler(store))
		},
		func() error {
			h := commands.NewRunStateHandler(store)
			if err := mediator.RegisterHandler[*commands.PauseCommand](m, h); err != nil {
				return err
			}
			if err := mediator.RegisterHandler[*commands.ResumeCommand](m, h); err != nil {
				return err
			}
			return mediator.RegisterHandler[*commands.StopCommand](m, h)
		},
		func() error {
			return mediator.RegisterHandler[*commands.TickCommand](m, commands.NewTickHandler(store, strictInvariants))
		},
		func() error {
			return mediator.RegisterHandler[*commands.RobotEventCommand](m, commands.NewRobotEventHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*queries.GetAgentQuery](m, queries.NewGetAgentHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*queries.GetOrderQuery](m, queries.NewGetOrderHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*queries.GetWarehouseSnapshotQuery](m, queries.NewGetWarehouseSnapshotHandler(reader))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return nil, err
		}
	}

	return m, nil
}
