// Package testsupport provides stubs and git fixture builders shared by package tests.
package testsupport
