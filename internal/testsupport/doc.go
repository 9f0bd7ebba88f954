// Package testsupport builds throwaway configs and catalog files for tests.
package testsupport
