package manageprofile

import (
	"calculators/internal/common/logger"
	validateprofile "calculators/internal/engines/insurance/validate-profile"
	"calculators/internal/repository"
)

type ServiceDependencies struct {
	Logger    logger.Logger
	Store     repository.ProfileStore
	Validator *validateprofile.Service
}
