package service

// RecorderCount reports how many score recorders svc is holding
func RecorderCount(svc GameService) int {
	impl := svc.(*gameServiceImpl)
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	return len(impl.recorders)
}
