// service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fleetgate/gatekeeper/audit"
	"github.com/fleetgate/gatekeeper/dao"
	"github.com/fleetgate/gatekeeper/engine"
	"github.com/fleetgate/gatekeeper/util"
)

type Services struct {
	Access IAccessService
}

func InitializeServices(
	driver neo4j.Driver,
	evaluator *engine.Evaluator,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	profileDAO := dao.NewProfileDAO(driver)

	services := &Services{
		Access: NewAccessService(
			evaluator,
			profileDAO,
			validationUtil,
			cacheService,
			notificationSvc,
			auditService,
			eventBus,
		),
	}

	return services, nil
}
