// internal is internal packages for statusboard.
//
// The endpoint package renders what the dashboard package holds.
// They are connected through small interfaces like endpoint.Store and mcp.Store.
//
// The boarderr, console and testutil packages are used by other packages.
package internal
