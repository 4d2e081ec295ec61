// Package domain contains the core business entities and value objects of the
// task service. It has no knowledge of HTTP, SQL, or any other delivery or
// persistence mechanism.
package domain
