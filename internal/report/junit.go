// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"os"
	"time"

	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/pkg/errors"
)

// WriteJUnit renders the run as a JUnit XML file so CI systems can
// consume the results directly
func WriteJUnit(path string, rep *suite.Report) error {
	ts := junit.Testsuite{
		Name: rep.RunName,
		Time: formatSeconds(rep.Finished.Sub(rep.Started)),
	}
	ts.SetTimestamp(rep.Started)

	for _, result := range rep.Results {
		tc := junit.Testcase{
			Name:      result.Name,
			Classname: result.Deployment,
			Time:      formatSeconds(result.Duration),
		}
		if !result.Passed {
			tc.Failure = &junit.Result{
				Message: result.Message,
				Data:    result.Description,
			}
		}
		ts.AddTestcase(tc)
	}

	var suites junit.Testsuites
	suites.AddSuite(ts)

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()
	if err := suites.WriteXML(file); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
