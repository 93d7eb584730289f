package repository

import (
	availabilityRepo "padelwatch/database/repository/availability"
	courtRepo "padelwatch/database/repository/court"
	locationRepo "padelwatch/database/repository/location"
	notificationRepo "padelwatch/database/repository/notification"
	searchOrderRepo "padelwatch/database/repository/searchorder"
	searchRequestRepo "padelwatch/database/repository/searchrequest"
)

// Re-export the LocationRepository interface and constructor.
type LocationRepository = locationRepo.LocationRepository

var NewGormLocationRepo = locationRepo.NewGormLocationRepo

// Re-export the CourtRepository interface and constructor.
type CourtRepository = courtRepo.CourtRepository

var NewGormCourtRepo = courtRepo.NewGormCourtRepo

// Re-export the AvailabilityRepository interface and constructor.
type AvailabilityRepository = availabilityRepo.AvailabilityRepository

var NewGormAvailabilityRepo = availabilityRepo.NewGormAvailabilityRepo

// Re-export the SearchRequestRepository interface and constructor.
type SearchRequestRepository = searchRequestRepo.SearchRequestRepository

var NewGormSearchRequestRepo = searchRequestRepo.NewGormSearchRequestRepo

// Re-export the SearchOrderRepository interface and constructor.
type SearchOrderRepository = searchOrderRepo.SearchOrderRepository

var NewGormSearchOrderRepo = searchOrderRepo.NewGormSearchOrderRepo

// Re-export the NotificationRepository interface and constructor.
type NotificationRepository = notificationRepo.NotificationRepository

var NewGormNotificationRepo = notificationRepo.NewGormNotificationRepo
