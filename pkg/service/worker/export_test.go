package worker

// Maintain runs a single maintenance cycle for testing purposes.
var Maintain = (*MaintenanceWorker).maintain
