// Package envfile makes settings from a local dotenv file visible as process
// environment variables before configuration is resolved. Variables that are
// already set in the process always win over the file.
package envfile
