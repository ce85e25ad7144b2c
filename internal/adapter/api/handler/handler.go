package handler

import (
	"unimarket/internal/usecase"
)

var (
	authHandler    *AuthHandler
	userHandler    *UserHandler
	serviceHandler *ServiceHandler
	productHandler *ProductHandler
	jobHandler     *JobHandler
	premiumHandler *PremiumHandler
	reviewHandler  *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	serviceUseCase *usecase.ServiceUseCase,
	productUseCase *usecase.ProductUseCase,
	jobUseCase *usecase.JobUseCase,
	premiumUseCase *usecase.PremiumUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	serviceHandler = NewServiceHandler(serviceUseCase)
	productHandler = NewProductHandler(productUseCase)
	jobHandler = NewJobHandler(jobUseCase)
	premiumHandler = NewPremiumHandler(premiumUseCase)
	reviewHandler = NewReviewHandler(ratingUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetServiceHandler() *ServiceHandler {
	return serviceHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetJobHandler() *JobHandler {
	return jobHandler
}

func GetPremiumHandler() *PremiumHandler {
	return premiumHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
