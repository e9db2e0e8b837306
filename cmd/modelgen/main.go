// Command modelgen trains the synthetic fallback classifier and writes it as
// a JSON artifact the API can load at startup.
package main

import (
	"fmt"
	"os"

	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/ml"
	"github.com/spf13/pflag"
)

func main() {
	output := pflag.StringP("output", "o", "fraud_model.json", "path of the artifact to write")
	featureOrder := pflag.StringP("feature-order", "f", "", "comma separated feature order (default amount,merchant,category,hour,user_age)")
	threshold := pflag.Float64P("threshold", "t", ml.DefaultThreshold, "probability at or above which a transaction is flagged")
	version := pflag.String("version", "", "version label stored in the artifact")
	pflag.Parse()

	if err := run(*output, *featureOrder, *threshold, *version); err != nil {
		fmt.Fprintf(os.Stderr, "modelgen: %v\n", err)
		os.Exit(1)
	}
}

func run(output, featureOrder string, threshold float64, version string) error {
	order := ml.ParseFeatureOrder(featureOrder)
	if len(order) == 0 {
		order = ml.DefaultFeatureOrder
	}
	if err := ml.ValidateFeatureOrder(order); err != nil {
		return err
	}
	if threshold <= 0 || threshold >= 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", threshold)
	}

	artifact := ml.TrainFallback(order)
	artifact.Threshold = &threshold
	if version != "" {
		artifact.Version = version
	}

	if err := ml.WriteArtifact(output, artifact); err != nil {
		return err
	}
	fmt.Printf("wrote %s (version %s, features %v)\n", output, artifact.Version, artifact.FeatureOrder)
	return nil
}
