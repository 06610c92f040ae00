package kubeutil

import (
	"log"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// ConnectToK8s detects a *kubernetes.Clientset.
//
// Kubeconfig is searched, in growing priority, at `~/.kube/config`, the
// envvar `KUBECONFIG` and the given search path. With no kubeconfig
// found, the in-cluster config is used.
//
// *CAUTION*: when no config works, IT WILL CAUSE PANIC.
func ConnectToK8s(kubeconfigSearchPath ...string) *kubernetes.Clientset {
	kubeconfig := ""

	if home := homedir.HomeDir(); home != "" {
		candidate := filepath.Join(home, ".kube", "config")
		if s, err := os.Stat(candidate); err == nil && !s.IsDir() {
			kubeconfig = candidate
		}
	}
	if k := os.Getenv("KUBECONFIG"); k != "" {
		if s, err := os.Stat(k); err == nil && !s.IsDir() {
			kubeconfig = k
		}
	}
	for _, sp := range kubeconfigSearchPath {
		if s, err := os.Stat(sp); err == nil && !s.IsDir() {
			kubeconfig = sp
			break
		}
	}

	var config *rest.Config
	var err error
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		log.Fatalln(err) // PANIC!
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		log.Fatalln(err) // PANIC!
	}
	return clientset
}
