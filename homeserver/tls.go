package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
)

func loadCertPool(pemFile string) (*x509.CertPool, error) {
	data, err := ioutil.ReadFile(pemFile)
	if err != nil {
		return nil, err
	}

	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("failed to load certificate %q", pemFile)
	}
	return certPool, nil
}

// makeTLSconfig returns nil unless both an ssl certificate and an ssl key has been given
func makeTLSconfig() (*tls.Config, error) {
	if sslCert == "" || sslKey == "" {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(sslCert, sslKey)
	if err != nil {
		return nil, err
	}
	tlsConfig := &tls.Config{Certificates: []tls.Certificate{cert}}

	if clientCertVerify {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}
	if clientCA != "" {
		if tlsConfig.ClientCAs, err = loadCertPool(clientCA); err != nil {
			return nil, err
		}
	}
	return tlsConfig, nil
}
