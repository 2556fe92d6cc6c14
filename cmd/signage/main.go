// Signage Designer is a car park signage design and compliance service.
//
// It assembles parking signs from templates, stores them under versioned
// references, and checks them against the British Parking Association
// Code of Practice.
//
// Usage:
//
//	# Start the HTTP API server
//	signage serve
//
//	# Start with a custom configuration file
//	signage serve --config /etc/signage/config.yaml
//
//	# Run as an MCP tool server over stdio
//	signage mcp
//
//	# Check a stored sign (exit code 1 when non-compliant)
//	signage check KRS-ENT-001-v1
//
//	# Check a sign document from a file
//	signage check --file sign.json
//
//	# Build a sign reference
//	signage reference krs entrance 1
package main

func main() {
	Execute()
}
