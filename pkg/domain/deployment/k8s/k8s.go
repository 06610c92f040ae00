// Package k8s backs the deployment locator with a kubernetes cluster.
//
// A model server is a Deployment labeled with the pipeline, step and
// model it serves, exposed by a Service of the same name. "Running"
// means the Deployment has at least one available replica.
package k8s

import (
	"context"
	"fmt"
	"sort"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	kubelabels "k8s.io/apimachinery/pkg/labels"
	k8s "k8s.io/client-go/kubernetes"

	"github.com/wovenml/weavefab/pkg/domain/deployment"
	"github.com/wovenml/weavefab/pkg/xerrors"
)

// Labels identifying model server Deployments.
const (
	LabelRole     = "weavefab/role"
	LabelPipeline = "weavefab/pipeline"
	LabelStep     = "weavefab/step"
	LabelModel    = "weavefab/model"

	RoleModelServer = "model-server"
)

// subset of k8s.Clientset
type K8sClient interface {
	ListDeployments(ctx context.Context, namespace string, labelSelector string) ([]kubeapps.Deployment, error)
	GetService(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error)
}

type k8sClient struct {
	client k8s.Interface
}

var _ K8sClient = &k8sClient{}

func WrapClientset(clientset k8s.Interface) K8sClient {
	return &k8sClient{client: clientset}
}

func (k *k8sClient) ListDeployments(ctx context.Context, namespace string, labelSelector string) ([]kubeapps.Deployment, error) {
	depls, err := k.client.AppsV1().Deployments(namespace).List(
		ctx, kubeapimeta.ListOptions{LabelSelector: labelSelector},
	)
	if err != nil {
		return nil, err
	}
	return depls.Items, nil
}

func (k *k8sClient) GetService(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error) {
	return k.client.CoreV1().Services(namespace).Get(ctx, svcname, kubeapimeta.GetOptions{})
}

type provider struct {
	client    K8sClient
	namespace string
	domain    string
}

// New builds a Provider over client, scoped to namespace. domain is the
// cluster domain suffix of Service DNS names, "cluster.local" normally.
func New(client K8sClient, namespace string, domain string) deployment.Provider {
	return &provider{client: client, namespace: namespace, domain: domain}
}

var _ deployment.Provider = &provider{}

func (p *provider) FindModelServer(
	ctx context.Context,
	pipeline string, step string, model string,
	running bool,
) ([]deployment.Service, error) {
	selector := kubelabels.Set{LabelRole: RoleModelServer}
	if pipeline != "" {
		selector[LabelPipeline] = pipeline
	}
	if step != "" {
		selector[LabelStep] = step
	}
	if model != "" {
		selector[LabelModel] = model
	}

	depls, err := p.client.ListDeployments(ctx, p.namespace, selector.String())
	if err != nil {
		return nil, xerrors.Wrap(err)
	}

	services := []deployment.Service{}
	for _, depl := range depls {
		isRunning := depl.Status.AvailableReplicas > 0
		if running && !isRunning {
			continue
		}

		svc := deployment.Service{
			Name:             depl.Name,
			PipelineName:     depl.Labels[LabelPipeline],
			PipelineStepName: depl.Labels[LabelStep],
			ModelName:        depl.Labels[LabelModel],
			Running:          isRunning,
			Created:          depl.CreationTimestamp.Time,
		}
		svc.PredictionURL, err = p.predictionURL(ctx, depl.Name)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Created.After(services[j].Created)
	})
	return services, nil
}

// predictionURL resolves the in-cluster endpoint of the Service exposing
// the model server. A server whose Service is gone stays listed, with an
// empty URL.
func (p *provider) predictionURL(ctx context.Context, name string) (string, error) {
	svc, err := p.client.GetService(ctx, p.namespace, name)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			return "", nil
		}
		return "", xerrors.Wrap(err)
	}
	if len(svc.Spec.Ports) == 0 {
		return "", nil
	}
	return fmt.Sprintf(
		"http://%s.%s.svc.%s:%d",
		svc.Name, p.namespace, p.domain, svc.Spec.Ports[0].Port,
	), nil
}
