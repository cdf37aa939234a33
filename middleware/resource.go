package middleware

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// unknownService is the default service name when detection fails
const unknownService = "unknown-service"

// detectServiceInfo detects service name and namespace from the Kubernetes
// environment. Priority: OTEL_SERVICE_NAME, then POD_NAME / hostname with the
// replicaset and pod hashes stripped, then unknownService.
func detectServiceInfo() (serviceName, namespace string) {
	serviceName = os.Getenv("OTEL_SERVICE_NAME")

	if serviceName == "" {
		podName := os.Getenv("POD_NAME")
		if podName == "" {
			// Kubernetes sets hostname to the pod name
			podName, _ = os.Hostname()
		}

		// Pod naming: <deployment-name>-<replicaset-hash>-<pod-hash>
		// e.g. "messaging-75c98b4b9c-kdv2n" -> "messaging"
		if podName != "" {
			parts := strings.Split(podName, "-")
			if len(parts) >= 3 {
				serviceName = strings.Join(parts[:len(parts)-2], "-")
			} else if len(parts) > 0 {
				serviceName = parts[0]
			}
		}
	}

	if serviceName == "" {
		serviceName = unknownService
	}

	// Namespace: OTEL_RESOURCE_ATTRIBUTES, then the mounted service account
	// namespace file, then POD_NAMESPACE, then "default"
	if attrs := os.Getenv("OTEL_RESOURCE_ATTRIBUTES"); attrs != "" {
		for _, attr := range strings.Split(attrs, ",") {
			kv := strings.SplitN(attr, "=", 2)
			if len(kv) == 2 && kv[0] == "service.namespace" {
				return serviceName, kv[1]
			}
		}
	}

	if data, err := os.ReadFile("/var/run/secrets/kubernetes.io/serviceaccount/namespace"); err == nil {
		return serviceName, strings.TrimSpace(string(data))
	}

	if ns := os.Getenv("POD_NAMESPACE"); ns != "" {
		return serviceName, ns
	}

	return serviceName, "default"
}

// CreateResource creates an OpenTelemetry resource with auto-detected attributes.
// Exported for use by other middleware (tracing, profiling).
func CreateResource(ctx context.Context) (*resource.Resource, error) {
	serviceName, namespace := detectServiceInfo()

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),   // Read OTEL_* env vars if set
		resource.WithProcess(),   // Add process info (PID, executable path)
		resource.WithOS(),        // Add OS info
		resource.WithContainer(), // Add container ID if running in container
		resource.WithHost(),      // Add hostname
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceNamespaceKey.String(namespace),
		),
	)

	if err != nil {
		// If resource creation fails, create minimal resource
		return resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceNamespaceKey.String(namespace),
		), fmt.Errorf("resource detection partial failure (using fallback): %w", err)
	}

	return res, nil
}

// GetServiceName extracts service name from a resource
func GetServiceName(res *resource.Resource) string {
	for _, attr := range res.Attributes() {
		if attr.Key == semconv.ServiceNameKey {
			return attr.Value.AsString()
		}
	}
	return unknownService
}
