package main

import (
	"CampusEventPortal/internal/bootstrap"
	pkg "CampusEventPortal/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.PortalModules,
	)

	app.Run()
}
