package triggers

import (
	apipages "github.com/wovenml/weavefab/pkg/api/types/pages"
	apitriggers "github.com/wovenml/weavefab/pkg/api/types/triggers"
	"github.com/wovenml/weavefab/pkg/domain/trigger"
	"github.com/wovenml/weavefab/pkg/utils/slices"
)

func ComposeSummary(body trigger.ResponseBody) apitriggers.Summary {
	return apitriggers.Summary{
		Id:                body.Id,
		Name:              body.Name,
		EventSourceFlavor: body.EventSourceFlavor,
		ActionFlavor:      body.ActionFlavor,
		ActionSubType:     string(body.ActionSubType),
		IsActive:          body.IsActive,
	}
}

// ComposeDetail renders a trigger response, carrying over only the
// facets the response actually has.
func ComposeDetail(r trigger.Response) apitriggers.Detail {
	detail := apitriggers.Detail{Summary: ComposeSummary(r.Body())}

	if description, err := r.Description(); err == nil {
		eventFilter, _ := r.EventFilter()
		action, _ := r.Action()
		detail.Metadata = &apitriggers.Metadata{
			Description: description,
			EventFilter: eventFilter,
			Action:      action,
		}
	}

	if es, err := r.EventSource(); err == nil {
		detail.Resources = &apitriggers.Resources{
			EventSource: apitriggers.EventSource{
				Id:      es.Id,
				Name:    es.Name,
				Flavor:  es.Flavor,
				SubType: string(es.SubType),
			},
		}
	}

	return detail
}

func ComposePage(page apipages.Page[trigger.Response]) apipages.Page[apitriggers.Detail] {
	return apipages.Page[apitriggers.Detail]{
		Index:      page.Index,
		MaxSize:    page.MaxSize,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Items:      slices.Map(page.Items, ComposeDetail),
	}
}
