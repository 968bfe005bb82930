package app

import "os"

const testModeEnv = "SALESBOARD_TEST_MODE"

// InTestMode reports whether the binary should skip runtime side effects
// such as opening the database pool and binding the listener.
func InTestMode() bool {
	return os.Getenv(testModeEnv) == "1"
}
