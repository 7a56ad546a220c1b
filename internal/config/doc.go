// Package config loads vtl.yaml, the project-level settings of the test
// harness and the vtl command.
//
// # Configuration File Structure
//
//	queries:
//	  testIdAttribute: data-testid
//	  asyncTimeout: 1s
//	  asyncInterval: 50ms
//	  debugPrintLimit: 7000
//	render:
//	  strictMode: false
//	  maxFlushPasses: 50
//	log:
//	  level: warn
//
// Environment variables override the file: VTL_TEST_ID_ATTRIBUTE,
// VTL_ASYNC_TIMEOUT, VTL_DEBUG_PRINT_LIMIT, VTL_STRICT_MODE and
// VTL_LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Timeout:", cfg.AsyncTimeoutDuration())
package config
