package usecase

// HazardRows is exported for testing
var HazardRows = hazardRows

// ParseParticipantCSV is exported for testing
var ParseParticipantCSV = parseParticipantCSV

// DateAndLocation is exported for testing
var DateAndLocation = dateAndLocation
