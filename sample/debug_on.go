//go:build d3ddebug

package sample

const debugBuild = true
