// controller/controllers.go
package controller

import "github.com/fleetgate/gatekeeper/service"

type Controllers struct {
	Access *AccessController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Access: NewAccessController(services.Access),
	}
}
