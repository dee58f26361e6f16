// Package lockfile parses CocoaPods Podfile.lock documents.
//
// A lock file is a fixed-shape document of eight sections separated by a
// single blank line:
//
//	PODS, DEPENDENCIES, SPEC REPOS, EXTERNAL SOURCES, CHECKOUT OPTIONS,
//	SPEC CHECKSUMS, PODFILE CHECKSUM, COCOAPODS
//
// Each section is scanned line by line according to its indentation. The
// parser is read-only and stateless; a Parser may be shared between
// goroutines.
//
// Basic usage:
//
//	lock, err := lockfile.Parse(data)
//	if err != nil {
//	    // domain.ErrorCode(err) names the failure kind
//	}
//	for _, pod := range lock.Pods {
//	    fmt.Println(pod.Name, pod.Version)
//	}
package lockfile
